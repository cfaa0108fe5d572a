package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/archestore/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecs-stress: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(cfg)
	if p := startProfile(cfg); p != nil {
		defer p.Stop()
	}

	report, err := run(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("stress test failed")
	}

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	logger.Info().Msg("stress test complete")
}

func newLogger(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func startProfile(cfg Config) interface{ Stop() } {
	var mode func(*profile.Profile)
	switch cfg.Profile {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return nil
	}
	return profile.Start(mode, profile.ProfilePath(cfg.ProfilePath), profile.NoShutdownHook, profile.Quiet)
}

type stressSystems struct {
	movement *MovementSystem
	decay    *DecaySystem
	render   *RenderSystem
	reaper   *ReaperSystem
}

func setup(cfg Config, logger zerolog.Logger) (*ecs.World, *ecs.Scheduler, *stressSystems) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[MeshHandle](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[Lifetime](registry)

	world := ecs.NewWorld(
		ecs.WithRegistry(registry),
		ecs.WithLogger(logger),
		ecs.WithArchetypeCapacity(cfg.Entities/8),
	)

	rng := rand.New(rand.NewSource(cfg.Seed))
	systems := &stressSystems{
		movement: &MovementSystem{},
		decay:    &DecaySystem{},
		render:   &RenderSystem{},
		reaper:   &ReaperSystem{rng: rng},
	}

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(systems.movement)
	scheduler.Register(systems.decay)
	scheduler.Register(systems.render)
	scheduler.Register(systems.reaper)

	for i := 0; i < cfg.Entities; i++ {
		world.Spawn(randomComponents(rng)...)
	}
	return world, scheduler, systems
}

func run(cfg Config, logger zerolog.Logger) (*Report, error) {
	logger.Info().Int("entities", cfg.Entities).Int64("seed", cfg.Seed).Msg("populating world")
	world, scheduler, systems := setup(cfg, logger)

	report := &Report{
		Duration:       cfg.RunDuration(),
		Entities:       cfg.Entities,
		Components:     world.Registry().Len(),
		Systems:        scheduler.GetStats().SystemCount,
		Seed:           cfg.Seed,
		GCPauseMetrics: cfg.GCPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", cfg.RunDuration()).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunDuration())
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.World = world.CollectStats()
	report.Scheduler = scheduler.GetStats()
	report.Despawned = systems.reaper.Despawned
	report.Respawned = systems.reaper.Respawned
	report.Drawn = systems.render.Drawn

	if report.World.TotalEntityCount != cfg.Entities {
		return report, eris.Errorf("population drifted: %d entities, want %d", report.World.TotalEntityCount, cfg.Entities)
	}

	logger.Info().
		Int64("updates", report.TotalUpdates).
		Int64("despawned", report.Despawned).
		Int("archetypes", report.World.ArchetypeCount).
		Msg("simulation finished")
	return report, nil
}
