package config

import (
	"testing"
	"time"
)

func TestNewSettings(t *testing.T) {
	cfg := Default()
	settings := NewSettings(cfg)

	if settings.Snapshot() != cfg {
		t.Error("Settings snapshot should match the provided config")
	}
}

func TestStepInterval(t *testing.T) {
	settings := NewSettings(Default())

	if settings.GetStepInterval() != DefaultStepInterval {
		t.Errorf("Expected default step interval %v, got %v", DefaultStepInterval, settings.GetStepInterval())
	}

	settings.SetStepInterval(40 * time.Millisecond)
	if settings.GetStepInterval() != 40*time.Millisecond {
		t.Errorf("Expected 40ms, got %v", settings.GetStepInterval())
	}

	settings.SetStepInterval(-time.Second) // Should be clamped to 0
	if settings.GetStepInterval() != 0 {
		t.Error("Step interval should be clamped to minimum 0")
	}

	settings.SetStepInterval(time.Hour) // Should be clamped to 1s
	if settings.GetStepInterval() != MaxStepInterval {
		t.Error("Step interval should be clamped to maximum 1s")
	}
}

func TestMaxParallel(t *testing.T) {
	settings := NewSettings(Default())

	if settings.GetMaxParallel() != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, settings.GetMaxParallel())
	}

	settings.SetMaxParallel(0) // Should be clamped to 1
	if settings.GetMaxParallel() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallel(15) // Should be clamped to 10
	if settings.GetMaxParallel() != 10 {
		t.Error("Max parallel should be clamped to maximum 10")
	}
}

func TestChartRefresh(t *testing.T) {
	settings := NewSettings(Default())

	if settings.GetChartRefresh() != DefaultChartRefresh {
		t.Errorf("Expected default chart refresh %v, got %v", DefaultChartRefresh, settings.GetChartRefresh())
	}

	settings.SetChartRefresh(time.Millisecond)
	if settings.GetChartRefresh() != MinChartRefresh {
		t.Errorf("Chart refresh should be clamped to %v, got %v", MinChartRefresh, settings.GetChartRefresh())
	}
}

func TestLanguage(t *testing.T) {
	settings := NewSettings(Default())

	if settings.GetLanguage() != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, settings.GetLanguage())
	}

	settings.SetLanguage("en")
	if settings.GetLanguage() != "en" {
		t.Errorf("Expected language 'en', got %s", settings.GetLanguage())
	}

	settings.SetLanguage("xx") // Unknown languages are ignored
	if settings.GetLanguage() != "en" {
		t.Errorf("Expected language to stay 'en', got %s", settings.GetLanguage())
	}
}

func TestZeroConfigFallsBackToDefaults(t *testing.T) {
	settings := NewSettings(Config{})

	if settings.GetDeviceCount() != DefaultDeviceCount {
		t.Errorf("Expected default device count, got %d", settings.GetDeviceCount())
	}
	if settings.GetClockRefresh() != DefaultClockRefresh {
		t.Errorf("Expected default clock refresh, got %v", settings.GetClockRefresh())
	}
	if settings.GetOverlapPolicy() != DefaultOverlap {
		t.Errorf("Expected default overlap, got %s", settings.GetOverlapPolicy())
	}
	if w, h := settings.GetWindowSize(); w != DefaultWindowWidth || h != DefaultWindowHeight {
		t.Errorf("Expected default window size, got %dx%d", w, h)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(Default())

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
