package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up next to a model and in the
// working directory.
const FileName = "robomjcf.yaml"

// Load builds the configuration for exporting the model at modelPath, with
// priority defaults < file < flags. Without an explicit -config the first
// existing file among FileName next to the model, FileName in the working
// directory and config.yaml in ConfigDir is used.
func Load(f *Flags, modelPath string) (*Config, error) {
	cfg := Default()

	configPath := ""
	if f != nil {
		configPath = f.Config
	}
	if configPath == "" {
		configPath = findConfigFile(modelPath)
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg, f)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing candidate, or "".
func findConfigFile(modelPath string) string {
	var candidates []string
	if modelPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(modelPath), FileName))
	}
	candidates = append(candidates,
		FileName,
		filepath.Join(ConfigDir(), "config.yaml"),
	)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate user config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "robomjcf")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "robomjcf")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "robomjcf")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "robomjcf")
	}
}

// loadFromFile merges the YAML file at path into cfg. Unknown keys are
// rejected so a misspelt option does not silently keep its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
