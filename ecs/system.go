package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and may include Query or
// *View fields, which the Scheduler initializes on registration.
type System interface {
	Execute(frame *UpdateFrame)
}
