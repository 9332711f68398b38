package check

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the configuration for a Runner.
type Config struct {
	// Engine executes code units.
	// Required.
	Engine Engine

	// Display manages graphical surfaces.
	// Required.
	Display Display

	// UnitTimeout bounds the execution of each unit. Zero means
	// unbounded, which reproduces the source behavior: a unit that
	// never returns blocks the run indefinitely.
	UnitTimeout time.Duration

	// ArtifactWarn downgrades artifact export failures from
	// run-fatal errors to per-unit logged warnings, skipping the
	// failed artifact. Default false: artifact failures abort the run.
	ArtifactWarn bool

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Engine == nil {
		missing = append(missing, "Engine")
	}
	if c.Display == nil {
		missing = append(missing, "Display")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// logf logs through the configured logger, if any.
func (c *Config) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Logf(format, args...)
	}
}
