package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Stats.LapLift != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[stats]
timezone = "America/Denver"
season = "2024-11-01"
lap-lift = "Wildcat"
streak-cutoff = "15:45"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Stats.LapLift == nil || *cfg.Stats.LapLift != "Wildcat" {
		t.Fatalf("unexpected lap lift: %v", cfg.Stats.LapLift)
	}
	if cfg.Stats.Season == nil || *cfg.Stats.Season != "2024-11-01" {
		t.Fatalf("unexpected season: %v", cfg.Stats.Season)
	}
	if cfg.Stats.StreakCutoff == nil || *cfg.Stats.StreakCutoff != "15:45" {
		t.Fatalf("unexpected cutoff: %v", cfg.Stats.StreakCutoff)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[stats]\nlap-lfit = \"Collins\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestParseCutoff(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "16:30", want: 16*time.Hour + 30*time.Minute},
		{in: "00:00", want: 0},
		{in: " 9:05 ", want: 9*time.Hour + 5*time.Minute},
		{in: "24:00", wantErr: true},
		{in: "16:60", wantErr: true},
		{in: "1630", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCutoff(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseCutoff(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "liftstats", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "liftstats", "liftstats.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
