package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Format != "vtu" || cfg.Output != "tmp.vtu" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("overrides", func(t *testing.T) {
		path := write("ok.yaml", "format: bemgen\nworkers: 2\nheight: 3\nlimits:\n  max_height: 10\n")
		cfg, err := Load(path, false)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Format != "bemgen" || cfg.Workers != 2 || cfg.Height != 3 {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Limits.MaxHeight != 10 || cfg.Limits.MinHeight != MinWallsHeight {
			t.Errorf("limits = %+v", cfg.Limits)
		}
		if cfg.Output != DefaultOutput {
			t.Errorf("unset keys keep defaults, output = %q", cfg.Output)
		}
	})

	t.Run("missing optional", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "none.yaml"), true)
		if err != nil || cfg != Default() {
			t.Errorf("cfg = %+v, err = %v", cfg, err)
		}
	})

	t.Run("missing required", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "none.yaml"), false); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		if _, err := Load(write("bad.yaml", "format: [unterminated\n"), false); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("out of limits", func(t *testing.T) {
		if _, err := Load(write("big.yaml", "height: 900\n"), false); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestClamp(t *testing.T) {
	cfg := Default()
	tests := []struct {
		in, ts, h float64
	}{
		{0.01, MinTriangleSize, MinWallsHeight},
		{1, 1, 1},
		{1000, MaxTriangleSize, MaxWallsHeight},
	}
	for _, tt := range tests {
		if got := cfg.ClampTriangleSize(tt.in); got != tt.ts {
			t.Errorf("ClampTriangleSize(%v) = %v, want %v", tt.in, got, tt.ts)
		}
		if got := cfg.ClampHeight(tt.in); got != tt.h {
			t.Errorf("ClampHeight(%v) = %v, want %v", tt.in, got, tt.h)
		}
	}
}
