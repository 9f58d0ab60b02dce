// Package config handles exporter configuration loading and management.
package config

import (
	"path/filepath"

	"github.com/Faultbox/robomjcf/pkg/mjcf"
)

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds MJCF export settings.
type ExportConfig struct {
	OutputDirectory     string `yaml:"output_directory"`
	OutputFilename      string `yaml:"output_filename"`
	NoDynamics          bool   `yaml:"no_dynamics"`
	CollisionShapesOnly bool   `yaml:"collision_shapes_only"`
	DrawCollisions      bool   `yaml:"draw_collisions"`
	AdditionalXML       string `yaml:"additional_xml"` // Relative to OutputDirectory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			OutputDirectory: ".",
			OutputFilename:  "robot.xml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// OutputPath returns the path of the robot document.
func (c *Config) OutputPath() string {
	return filepath.Join(c.Export.OutputDirectory, c.Export.OutputFilename)
}

// ExportOptions maps the export section onto exporter options.
func (c *Config) ExportOptions() mjcf.Options {
	opts := mjcf.Options{
		NoDynamics:     c.Export.NoDynamics,
		ShapesOnly:     c.Export.CollisionShapesOnly,
		DrawCollisions: c.Export.DrawCollisions,
	}
	if c.Export.AdditionalXML != "" {
		opts.AdditionalXMLFile = c.Export.AdditionalXML
		if !filepath.IsAbs(opts.AdditionalXMLFile) {
			opts.AdditionalXMLFile = filepath.Join(c.Export.OutputDirectory, c.Export.AdditionalXML)
		}
	}
	return opts
}
