package config

import (
	"sync"
	"time"

	"github.com/ytget/intune-dash/internal/model"
)

// Runtime bounds enforced by the setters
const (
	MinStepInterval = 0
	MaxStepInterval = time.Second
	MinChartRefresh = 500 * time.Millisecond
	MaxChartRefresh = time.Minute
	MinMaxParallel  = 1
	MaxMaxParallel  = 10
)

// Settings manages the live application configuration. Changes made through
// the settings dialog stay in memory for the lifetime of the process.
type Settings struct {
	mu  sync.RWMutex
	cfg Config
}

// NewSettings creates a new settings manager seeded from cfg
func NewSettings(cfg Config) *Settings {
	return &Settings{cfg: cfg}
}

// Snapshot returns a copy of the current configuration
func (s *Settings) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// GetStepInterval returns the delay between two progress steps
func (s *Settings) GetStepInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Runner.StepInterval
}

// SetStepInterval sets the delay between two progress steps
func (s *Settings) SetStepInterval(d time.Duration) {
	if d < MinStepInterval {
		d = MinStepInterval
	}
	if d > MaxStepInterval {
		d = MaxStepInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Runner.StepInterval = d
}

// GetMaxParallel returns the maximum number of simultaneous tasks
func (s *Settings) GetMaxParallel() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.Runner.MaxParallel <= 0 {
		return DefaultMaxParallel
	}
	return s.cfg.Runner.MaxParallel
}

// SetMaxParallel sets the maximum number of simultaneous tasks
func (s *Settings) SetMaxParallel(count int) {
	if count < MinMaxParallel {
		count = MinMaxParallel
	}
	if count > MaxMaxParallel {
		count = MaxMaxParallel
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Runner.MaxParallel = count
}

// GetOverlapPolicy returns the configured overlap policy name
func (s *Settings) GetOverlapPolicy() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.Runner.Overlap == "" {
		return DefaultOverlap
	}
	return s.cfg.Runner.Overlap
}

// GetChartRefresh returns the pie chart redraw interval
func (s *Settings) GetChartRefresh() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.Dashboard.ChartRefresh <= 0 {
		return DefaultChartRefresh
	}
	return s.cfg.Dashboard.ChartRefresh
}

// SetChartRefresh sets the pie chart redraw interval
func (s *Settings) SetChartRefresh(d time.Duration) {
	if d < MinChartRefresh {
		d = MinChartRefresh
	}
	if d > MaxChartRefresh {
		d = MaxChartRefresh
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Dashboard.ChartRefresh = d
}

// GetClockRefresh returns the header clock refresh interval
func (s *Settings) GetClockRefresh() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.Dashboard.ClockRefresh <= 0 {
		return DefaultClockRefresh
	}
	return s.cfg.Dashboard.ClockRefresh
}

// GetDeviceCount returns the number of sample devices in the table
func (s *Settings) GetDeviceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.Dashboard.DeviceCount <= 0 {
		return DefaultDeviceCount
	}
	return s.cfg.Dashboard.DeviceCount
}

// GetSeed returns the sample data seed, 0 meaning random
func (s *Settings) GetSeed() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Dashboard.Seed
}

// GetWindowSize returns the initial window size
func (s *Settings) GetWindowSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, h := s.cfg.Dashboard.WindowWidth, s.cfg.Dashboard.WindowHeight
	if w <= 0 {
		w = DefaultWindowWidth
	}
	if h <= 0 {
		h = DefaultWindowHeight
	}
	return w, h
}

// GetFleet returns the headline numbers of the analytics cards
func (s *Settings) GetFleet() model.Fleet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Fleet.ToFleet()
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.Language == "" {
		return DefaultLanguage
	}
	return s.cfg.Language
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Language = lang
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.LogLevel == "" {
		return DefaultLogLevel
	}
	return s.cfg.LogLevel
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
