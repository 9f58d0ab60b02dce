package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Export.OutputDirectory != "." {
		t.Errorf("expected output directory '.', got %s", cfg.Export.OutputDirectory)
	}
	if cfg.Export.OutputFilename != "robot.xml" {
		t.Errorf("expected output filename robot.xml, got %s", cfg.Export.OutputFilename)
	}
	if cfg.Export.NoDynamics || cfg.Export.CollisionShapesOnly || cfg.Export.DrawCollisions {
		t.Error("expected export toggles to be off by default")
	}
	if cfg.Export.AdditionalXML != "" {
		t.Errorf("expected no additional XML, got %s", cfg.Export.AdditionalXML)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "robomjcf.yaml")

	yamlContent := `
export:
  output_directory: "out/mujoco"
  output_filename: "arm.xml"
  no_dynamics: true
  collision_shapes_only: true
  draw_collisions: true
  additional_xml: "extra.xml"

logging:
  level: "debug"
  log_file: "export.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.OutputDirectory != "out/mujoco" {
		t.Errorf("expected output directory out/mujoco, got %s", cfg.Export.OutputDirectory)
	}
	if cfg.Export.OutputFilename != "arm.xml" {
		t.Errorf("expected output filename arm.xml, got %s", cfg.Export.OutputFilename)
	}
	if !cfg.Export.NoDynamics {
		t.Error("expected no_dynamics to be true")
	}
	if !cfg.Export.CollisionShapesOnly {
		t.Error("expected collision_shapes_only to be true")
	}
	if !cfg.Export.DrawCollisions {
		t.Error("expected draw_collisions to be true")
	}
	if cfg.Export.AdditionalXML != "extra.xml" {
		t.Errorf("expected additional_xml extra.xml, got %s", cfg.Export.AdditionalXML)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "export.log" {
		t.Errorf("expected log file 'export.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
export:
  no_dynamics: not a bool
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(""); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "robomjcf.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  no_dynamics: true\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(""); path == "" {
		t.Error("expected to find robomjcf.yaml in current directory")
	}
}

func TestFindConfigFileNextToModel(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())

	modelDir := t.TempDir()
	configPath := filepath.Join(modelDir, FileName)
	if err := os.WriteFile(configPath, []byte("export:\n  draw_collisions: true\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(filepath.Join(modelDir, "arm.yaml")); path != configPath {
		t.Errorf("expected %s, got %q", configPath, path)
	}

	cfg, err := Load(nil, filepath.Join(modelDir, "arm.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Export.DrawCollisions {
		t.Error("config next to the model was not applied")
	}
}

func TestFlagsRegister(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	f.Register(fs)

	err := fs.Parse([]string{"-debug", "-out", "build", "-shapes-only", "-draw-collisions", "-no-dynamics", "-additional-xml", "x.xml"})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg := Default()
	applyFlags(cfg, &f)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Export.OutputDirectory != "build" {
		t.Errorf("expected output directory build, got %s", cfg.Export.OutputDirectory)
	}
	if !cfg.Export.CollisionShapesOnly || !cfg.Export.DrawCollisions || !cfg.Export.NoDynamics {
		t.Errorf("expected export toggles on, got %+v", cfg.Export)
	}
	wantXML, _ := filepath.Abs("x.xml")
	if cfg.Export.AdditionalXML != wantXML {
		t.Errorf("expected additional xml %s, got %s", wantXML, cfg.Export.AdditionalXML)
	}
}

func TestAdditionalXMLFlagRelativeToWorkingDir(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	cfg := Default()
	cfg.Export.OutputDirectory = "out"
	applyFlags(cfg, &Flags{AdditionalXML: "extra.xml"})

	// t.TempDir may sit behind a symlink; compare against the resolved cwd.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	want := filepath.Join(wd, "extra.xml")
	if got := cfg.ExportOptions().AdditionalXMLFile; got != want {
		t.Errorf("flag path should resolve against the working directory: got %s, want %s", got, want)
	}

	cfg = Default()
	cfg.Export.OutputDirectory = "out"
	cfg.Export.AdditionalXML = "extra.xml"
	if got := cfg.ExportOptions().AdditionalXMLFile; got != filepath.Join("out", "extra.xml") {
		t.Errorf("config path should resolve against the output directory, got %s", got)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "robomjcf.yaml")

	yamlContent := `
export:
  output_directory: "from-file"
  output_filename: "file.xml"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{Config: configPath, OutputDir: "from-flag"}, "")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Directory should be from flag, not file
	if cfg.Export.OutputDirectory != "from-flag" {
		t.Errorf("expected output directory from flag, got %s", cfg.Export.OutputDirectory)
	}

	// Filename should be from file since no flag override
	if cfg.Export.OutputFilename != "file.xml" {
		t.Errorf("expected output filename from file, got %s", cfg.Export.OutputFilename)
	}
}

func TestLoadBadFile(t *testing.T) {
	if _, err := Load(&Flags{Config: "/nonexistent/robomjcf.yaml"}, ""); err == nil {
		t.Error("expected error for explicit missing config file")
	}
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	cfg.Export.OutputDirectory = "out"
	cfg.Export.AdditionalXML = "extra.xml"
	cfg.Export.CollisionShapesOnly = true

	opts := cfg.ExportOptions()
	if opts.AdditionalXMLFile != filepath.Join("out", "extra.xml") {
		t.Errorf("additional XML should resolve against the output directory, got %s", opts.AdditionalXMLFile)
	}
	if !opts.ShapesOnly {
		t.Error("expected ShapesOnly")
	}

	cfg.Export.AdditionalXML = "/abs/extra.xml"
	if got := cfg.ExportOptions().AdditionalXMLFile; got != "/abs/extra.xml" {
		t.Errorf("absolute path should be kept, got %s", got)
	}

	if cfg.OutputPath() != filepath.Join("out", "robot.xml") {
		t.Errorf("unexpected output path %s", cfg.OutputPath())
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "robomjcf.yaml")

	cfg := Default()
	cfg.Export.DrawCollisions = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.Export.DrawCollisions {
		t.Error("saved setting was not persisted")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), fileHeader) {
		t.Errorf("expected header comment, got %q", data)
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("export:\n  draw_collision: true\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected misspelt key to be rejected")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should keep defaults: %v", err)
	}
	if cfg.Export.OutputFilename != "robot.xml" {
		t.Errorf("defaults lost, got %s", cfg.Export.OutputFilename)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		problems int
	}{
		{"defaults", func(*Config) {}, 0},
		{"empty filename", func(c *Config) { c.Export.OutputFilename = "" }, 1},
		{"filename with directory", func(c *Config) { c.Export.OutputFilename = "out/robot.xml" }, 1},
		{"scene clash", func(c *Config) { c.Export.OutputFilename = "scene.xml" }, 1},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, 1},
		{"everything", func(c *Config) {
			c.Export.OutputFilename = ""
			c.Export.OutputDirectory = ""
			c.Logging.Level = "verbose"
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if got := len(multierr.Errors(err)); got != tt.problems {
				t.Fatalf("expected %d problems, got %d: %v", tt.problems, got, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadValidates(t *testing.T) {
	if _, err := Load(&Flags{Config: writeConfig(t, "logging:\n  level: loud\n")}, ""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if filepath.IsAbs(dir) {
		t.Setenv("PWD", dir)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
