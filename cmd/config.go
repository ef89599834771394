package cmd

import (
	"io"
	"log"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/arnavsurve/tacgen/internal/compiler"
	"github.com/arnavsurve/tacgen/internal/compiler/vm"
)

// Config holds the CLI settings. Environment variables provide the
// defaults and flags override them.
type Config struct {
	OutDir      string
	Verbose     bool
	Permissive  bool
	MaxSteps    int
	HistoryFile string
}

var config = loadConfig()

func loadConfig() Config {
	return Config{
		OutDir:      env.Str("TACGEN_OUT", "out"),
		Verbose:     env.Bool("TACGEN_VERBOSE"),
		Permissive:  env.Bool("TACGEN_PERMISSIVE"),
		MaxSteps:    env.Int("TACGEN_MAX_STEPS", vm.DefaultMaxSteps),
		HistoryFile: env.Str("TACGEN_HISTORY", ".tacgen_history"),
	}
}

func (c *Config) Logger() *log.Logger {
	if !c.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "tacgen: ", 0)
}

func (c *Config) Options() compiler.Options {
	return compiler.Options{
		Permissive: c.Permissive,
		MaxSteps:   c.MaxSteps,
		Logger:     c.Logger(),
	}
}
