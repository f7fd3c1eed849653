package config

import (
	"time"

	"github.com/ytget/intune-dash/internal/model"
)

// Supported log levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Default values
const (
	DefaultLanguage     = "system"
	DefaultLogLevel     = LogLevelInfo
	DefaultStepInterval = 25 * time.Millisecond
	DefaultMaxParallel  = 1
	DefaultOverlap      = "reject"
	DefaultChartRefresh = 4 * time.Second
	DefaultClockRefresh = time.Second
	DefaultDeviceCount  = 15
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// Config is the application configuration read from config.yaml
type Config struct {
	Language  string          `yaml:"language" validate:"oneof=system en ru pt"`
	LogLevel  string          `yaml:"log_level" validate:"oneof=debug info warn error"`
	Runner    RunnerConfig    `yaml:"runner"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Fleet     FleetConfig     `yaml:"fleet"`
}

// RunnerConfig tunes the simulated task runner
type RunnerConfig struct {
	StepInterval time.Duration `yaml:"step_interval" validate:"gte=0s,lte=1s"`
	MaxParallel  int           `yaml:"max_parallel" validate:"gte=1,lte=10"`
	Overlap      string        `yaml:"overlap" validate:"oneof=reject queue"`
}

// DashboardConfig tunes the presentation layer
type DashboardConfig struct {
	ChartRefresh time.Duration `yaml:"chart_refresh" validate:"gte=500ms,lte=1m"`
	ClockRefresh time.Duration `yaml:"clock_refresh" validate:"gte=100ms,lte=1m"`
	DeviceCount  int           `yaml:"device_count" validate:"gte=1,lte=500"`
	Seed         uint64        `yaml:"seed"` // 0 picks a random seed per launch
	WindowWidth  int           `yaml:"window_width" validate:"gte=640"`
	WindowHeight int           `yaml:"window_height" validate:"gte=480"`
}

// FleetConfig holds the headline numbers shown on the analytics cards
type FleetConfig struct {
	TotalDevices      int `yaml:"total_devices" validate:"gte=0"`
	ComplianceRate    int `yaml:"compliance_rate" validate:"gte=0,lte=100"`
	AutopilotEnrolled int `yaml:"autopilot_enrolled" validate:"gte=0,ltefield=TotalDevices"`
	PoliciesApplied   int `yaml:"policies_applied" validate:"gte=0"`
}

// Default returns the configuration used when no config file exists
func Default() Config {
	fleet := model.DefaultFleet()
	return Config{
		Language: DefaultLanguage,
		LogLevel: DefaultLogLevel,
		Runner: RunnerConfig{
			StepInterval: DefaultStepInterval,
			MaxParallel:  DefaultMaxParallel,
			Overlap:      DefaultOverlap,
		},
		Dashboard: DashboardConfig{
			ChartRefresh: DefaultChartRefresh,
			ClockRefresh: DefaultClockRefresh,
			DeviceCount:  DefaultDeviceCount,
			WindowWidth:  DefaultWindowWidth,
			WindowHeight: DefaultWindowHeight,
		},
		Fleet: FleetConfig{
			TotalDevices:      fleet.TotalDevices,
			ComplianceRate:    fleet.ComplianceRate,
			AutopilotEnrolled: fleet.AutopilotEnrolled,
			PoliciesApplied:   fleet.PoliciesApplied,
		},
	}
}

// ToFleet converts the fleet section into the model type
func (fc FleetConfig) ToFleet() model.Fleet {
	return model.Fleet{
		TotalDevices:      fc.TotalDevices,
		ComplianceRate:    fc.ComplianceRate,
		AutopilotEnrolled: fc.AutopilotEnrolled,
		PoliciesApplied:   fc.PoliciesApplied,
	}
}
