package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}
}

func TestParse_EmptyDocumentKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Runner.StepInterval != DefaultStepInterval {
		t.Errorf("Expected step interval %v, got %v", DefaultStepInterval, cfg.Runner.StepInterval)
	}
	if cfg.Dashboard.ChartRefresh != DefaultChartRefresh {
		t.Errorf("Expected chart refresh %v, got %v", DefaultChartRefresh, cfg.Dashboard.ChartRefresh)
	}
	if cfg.Fleet.TotalDevices != 152 {
		t.Errorf("Expected 152 total devices, got %d", cfg.Fleet.TotalDevices)
	}
}

func TestParse_Overrides(t *testing.T) {
	data := []byte(`
language: pt
log_level: debug
runner:
  step_interval: 10ms
  max_parallel: 3
  overlap: queue
dashboard:
  chart_refresh: 2s
  device_count: 40
  seed: 42
fleet:
  total_devices: 300
  compliance_rate: 88
  autopilot_enrolled: 290
  policies_applied: 60
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Language != "pt" || cfg.LogLevel != "debug" {
		t.Errorf("Unexpected language/log level: %s/%s", cfg.Language, cfg.LogLevel)
	}
	if cfg.Runner.StepInterval != 10*time.Millisecond {
		t.Errorf("Expected 10ms step interval, got %v", cfg.Runner.StepInterval)
	}
	if cfg.Runner.MaxParallel != 3 || cfg.Runner.Overlap != "queue" {
		t.Errorf("Unexpected runner config: %+v", cfg.Runner)
	}
	if cfg.Dashboard.ChartRefresh != 2*time.Second || cfg.Dashboard.DeviceCount != 40 || cfg.Dashboard.Seed != 42 {
		t.Errorf("Unexpected dashboard config: %+v", cfg.Dashboard)
	}
	if cfg.Dashboard.ClockRefresh != DefaultClockRefresh {
		t.Errorf("Expected untouched clock refresh to keep default, got %v", cfg.Dashboard.ClockRefresh)
	}
	if cfg.Fleet.ToFleet().TotalDevices != 300 {
		t.Errorf("Expected 300 total devices, got %d", cfg.Fleet.TotalDevices)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"unknown language", "language: de", "language"},
		{"too many slots", "runner:\n  max_parallel: 50", "max_parallel"},
		{"unknown overlap", "runner:\n  overlap: parallel", "overlap"},
		{"slow steps", "runner:\n  step_interval: 5s", "step_interval"},
		{"fast chart", "dashboard:\n  chart_refresh: 10ms", "chart_refresh"},
		{"rate above 100", "fleet:\n  compliance_rate: 140", "compliance_rate"},
		{"enrolled above total", "fleet:\n  total_devices: 10\n  autopilot_enrolled: 20", "autopilot_enrolled"},
	}

	for _, test := range tests {
		_, err := Parse([]byte(test.data))
		if err == nil {
			t.Errorf("%s: expected validation error", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.field) {
			t.Errorf("%s: expected error to mention '%s', got %v", test.name, test.field, err)
		}
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("runner: [unterminated"))
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}

	var pe parsingError
	if !errors.As(err, &pe) {
		t.Errorf("Expected parsingError, got %T", err)
	}
}

func TestParseConfig_MissingDefaultFileYieldsDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := ParseConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected default config, got %+v", cfg)
	}
}

func TestParseConfig_DoesNotCreateFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	if _, err := ParseConfig(""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, DashDir)); !os.IsNotExist(err) {
		t.Errorf("Expected config directory not to be created, stat err = %v", err)
	}
}

func TestParseConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yaml")
	if err := os.WriteFile(path, []byte("dashboard:\n  device_count: 25\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Dashboard.DeviceCount != 25 {
		t.Errorf("Expected 25 devices, got %d", cfg.Dashboard.DeviceCount)
	}
}

func TestParseConfig_ExplicitMissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := ParseConfig(path)
	if err == nil {
		t.Fatal("Expected error for missing explicit config")
	}

	var ce configError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected configError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected error to wrap os.ErrNotExist, got %v", err)
	}
	if !strings.Contains(err.Error(), "step_interval") {
		t.Error("Expected error text to include an example configuration")
	}
}

func TestParseConfig_EnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("language: ru\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnv, path)

	cfg, err := ParseConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Language != "ru" {
		t.Errorf("Expected language 'ru', got '%s'", cfg.Language)
	}
}

func TestDefaultYAML_RoundTrips(t *testing.T) {
	cfg, err := Parse([]byte(DefaultYAML()))
	if err != nil {
		t.Fatalf("Default YAML should parse, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected default YAML to decode into Default(), got %+v", cfg)
	}
}
