package main

import (
	"flag"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// Config controls a stress run. Every field can be set from the environment
// and then overridden on the command line.
type Config struct {
	Duration       string `config:"ECS_STRESS_DURATION"`
	Entities       int    `config:"ECS_STRESS_ENTITIES"`
	Seed           int64  `config:"ECS_STRESS_SEED"`
	Profile        string `config:"ECS_STRESS_PROFILE"`
	ProfilePath    string `config:"ECS_STRESS_PROFILE_PATH"`
	GCPauseMetrics bool   `config:"ECS_STRESS_GC_PAUSE_METRICS"`
	Verbose        bool   `config:"ECS_STRESS_VERBOSE"`
}

func defaultConfig() Config {
	return Config{
		Duration:    "10s",
		Entities:    10000,
		Seed:        1,
		ProfilePath: ".",
	}
}

// LoadConfig reads ECS_STRESS_* variables over the defaults, then applies
// flags from args.
func LoadConfig(args []string) (Config, error) {
	cfg := defaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "read environment")
	}

	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	fs.StringVar(&cfg.Duration, "duration", cfg.Duration, "The total duration the test should run for.")
	fs.IntVar(&cfg.Entities, "entities", cfg.Entities, "The initial number of entities to create.")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the random component mix.")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Write a profile while running: cpu or mem.")
	fs.StringVar(&cfg.ProfilePath, "profile-path", cfg.ProfilePath, "Directory the profile is written to.")
	fs.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", cfg.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Log archetype creation and despawns.")
	if err := fs.Parse(args); err != nil {
		return cfg, eris.Wrap(err, "parse flags")
	}

	return cfg, cfg.validate()
}

// RunDuration returns the parsed Duration. Only valid after LoadConfig succeeded.
func (c Config) RunDuration() time.Duration {
	d, _ := time.ParseDuration(c.Duration)
	return d
}

func (c Config) validate() error {
	d, err := time.ParseDuration(c.Duration)
	if err != nil {
		return eris.Wrapf(err, "invalid duration %q", c.Duration)
	}
	if d <= 0 {
		return eris.Errorf("duration must be positive, got %s", d)
	}

	if c.Entities <= 0 {
		return eris.Errorf("entities must be positive, got %d", c.Entities)
	}

	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return eris.Errorf("unknown profile mode %q", c.Profile)
	}
	return nil
}
