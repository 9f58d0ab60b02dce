package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/robomjcf/pkg/mjcf"
)

// ErrInvalidConfig wraps every problem reported by Validate.
var ErrInvalidConfig = errors.New("invalid config")

var logLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate reports all problems with c at once.
func (c *Config) Validate() error {
	var errs error
	invalid := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	name := c.Export.OutputFilename
	switch {
	case name == "":
		invalid("export.output_filename is empty")
	case filepath.Base(name) != name:
		invalid("export.output_filename %q must not contain a directory, use output_directory", name)
	case name == mjcf.SceneFileName:
		invalid("export.output_filename %q would be overwritten by the scene file", name)
	}

	if c.Export.OutputDirectory == "" {
		invalid("export.output_directory is empty")
	}

	if !logLevels[c.Logging.Level] {
		invalid("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return errs
}
