package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strata.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
import:
  brushes: true
  world_brushes: true
  detail_brushes: true
  lights: false
  material_path: "concrete/wall01"

parser:
  max_depth: 8

telemetry:
  logging:
    level: "debug"
    format: "json"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Import.Lights {
		t.Error("Lights = true, want explicit false from file")
	}
	if cfg.Import.MaterialPath != "concrete/wall01" {
		t.Errorf("MaterialPath = %q, want file value", cfg.Import.MaterialPath)
	}
	if cfg.Parser.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", cfg.Parser.MaxDepth)
	}
	if cfg.Parser.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("MaxFileSize = %d, want default fill", cfg.Parser.MaxFileSize)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() succeeded on a missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "import: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() succeeded on malformed YAML")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  logging:
    level: "verbose"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() succeeded with an unknown log level")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
import:
  brushes: true
  world_brushes: true
  detail_brushes: true
  lights: true
  material_path: "concrete/wall01"
`)

	t.Setenv("STRATA_IMPORT_MATERIAL_PATH", "metal/grate02")
	t.Setenv("STRATA_IMPORT_LIGHTS", "false")
	t.Setenv("STRATA_PARSER_MAX_DEPTH", "16")
	t.Setenv("STRATA_ASSETS_BUSY_TIMEOUT", "10s")
	t.Setenv("STRATA_TELEMETRY_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Import.MaterialPath != "metal/grate02" {
		t.Errorf("MaterialPath = %q, want env override", cfg.Import.MaterialPath)
	}
	if cfg.Import.Lights {
		t.Error("Lights = true, want env override false")
	}
	if cfg.Parser.MaxDepth != 16 {
		t.Errorf("MaxDepth = %d, want 16", cfg.Parser.MaxDepth)
	}
	if cfg.Assets.BusyTimeout != 10*time.Second {
		t.Errorf("BusyTimeout = %v, want 10s", cfg.Assets.BusyTimeout)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigWithEnvOverridesIgnoresBadValues(t *testing.T) {
	path := writeConfig(t, "")

	t.Setenv("STRATA_PARSER_MAX_DEPTH", "not-a-number")
	t.Setenv("STRATA_IMPORT_LIGHTS", "not-a-bool")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Parser.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default for an unparsable override", cfg.Parser.MaxDepth)
	}
	if !cfg.Import.Lights {
		t.Error("Lights = false, want default for an unparsable override")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}
