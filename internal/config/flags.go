package config

import (
	"flag"
	"path/filepath"
)

// Flags holds command-line overrides. Zero values leave the config
// untouched.
type Flags struct {
	Config         string
	Debug          bool
	OutputDir      string
	NoDynamics     bool
	ShapesOnly     bool
	DrawCollisions bool
	AdditionalXML  string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.OutputDir, "out", "", "Output directory")
	fs.BoolVar(&f.NoDynamics, "no-dynamics", false, "Omit inertial elements")
	fs.BoolVar(&f.ShapesOnly, "shapes-only", false, "Use only primitive shapes for collisions")
	fs.BoolVar(&f.DrawCollisions, "draw-collisions", false, "Render collision geometry as visuals")
	fs.StringVar(&f.AdditionalXML, "additional-xml", "", "XML fragment to splice into the document")
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.OutputDir != "" {
		cfg.Export.OutputDirectory = f.OutputDir
	}
	if f.NoDynamics {
		cfg.Export.NoDynamics = true
	}
	if f.ShapesOnly {
		cfg.Export.CollisionShapesOnly = true
	}
	if f.DrawCollisions {
		cfg.Export.DrawCollisions = true
	}
	if f.AdditionalXML != "" {
		// A path typed on the command line is relative to the working
		// directory, unlike the config key.
		path := f.AdditionalXML
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		cfg.Export.AdditionalXML = path
	}
}
