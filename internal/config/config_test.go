package config

import (
	"testing"

	"doseview/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Server.GinMode != "debug" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.UI.Theme != "light" || cfg.UI.PageSize != 25 {
		t.Errorf("ui = %+v", cfg.UI)
	}
	if cfg.Data.SampleSeed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Data.SampleSeed)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown theme", "THEME", "neon"},
		{"unknown gin mode", "GIN_MODE", "produktion"},
		{"negative page size", "PAGE_SIZE", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() accepted %s=%s", tt.key, tt.value)
			}
			if errors.GetCode(err) != errors.CodeConfigInvalid {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.CodeConfigInvalid)
			}
		})
	}
}

func TestLoadValidGinModes(t *testing.T) {
	for _, mode := range []string{"debug", "release", "test"} {
		t.Setenv("GIN_MODE", mode)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() with GIN_MODE=%s error = %v", mode, err)
		}
		if cfg.Server.GinMode != mode {
			t.Errorf("GinMode = %q, want %q", cfg.Server.GinMode, mode)
		}
	}
}
