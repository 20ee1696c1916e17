package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"snake-pilot/game/types"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny grid", func(c *Config) { c.GridSize = 2 }},
		{"unknown mode", func(c *Config) { c.Mode = "spiral" }},
		{"difficulty zero", func(c *Config) { c.Difficulty = 0 }},
		{"difficulty five", func(c *Config) { c.Difficulty = 5 }},
		{"speed", func(c *Config) { c.Speed = 9 }},
		{"timeout", func(c *Config) { c.StarvationTimeout = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); errors.Cause(err) != ErrInvalid {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestTickInterval(t *testing.T) {
	testCases := []struct {
		name      string
		speed     int
		mode      string
		autopilot bool
		starving  bool
		want      time.Duration
	}{
		{"slow manual", 1, "bounded", false, false, 150 * time.Millisecond},
		{"fast manual", 4, "bounded", false, false, 50 * time.Millisecond},
		{"toroidal", 1, "toroidal", false, false, 105 * time.Millisecond},
		{"toroidal floor", 4, "toroidal", false, false, 35 * time.Millisecond},
		{"autopilot", 2, "bounded", true, false, 80 * time.Millisecond},
		{"starving autopilot", 2, "bounded", true, true, 64 * time.Millisecond},
		{"all boosts", 4, "toroidal", true, true, 22400 * time.Microsecond},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Speed, cfg.Mode, cfg.Autopilot = tc.speed, tc.mode, tc.autopilot
			if got := cfg.TickInterval(tc.starving); got != tc.want {
				t.Errorf("TickInterval = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pilot.json")
	data := `{"grid_size": 40, "mode": "toroidal", "difficulty": 3, "starvation_timeout": "15s"}`
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var games int
	cfg, err := Parse("test", []string{"-config", file, "-difficulty", "4", "-games", "7"}, func(fs *flag.FlagSet) {
		fs.IntVar(&games, "games", 1, "games")
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.GridSize != 40 || cfg.Mode != "toroidal" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.StarvationTimeout != 15*time.Second || cfg.Speed != 2 {
		t.Errorf("timeout = %v speed = %d, want the file timeout and the default speed", cfg.StarvationTimeout, cfg.Speed)
	}
	if cfg.Difficulty != 4 {
		t.Errorf("difficulty = %d, want the flag value 4", cfg.Difficulty)
	}
	if games != 7 {
		t.Errorf("extra flag = %d, want 7", games)
	}
	if cfg.Grid() != types.NewGrid(40, types.Toroidal) {
		t.Errorf("Grid() = %+v", cfg.Grid())
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("test", []string{"-config", filepath.Join(t.TempDir(), "missing.json")}, nil); err == nil {
		t.Error("expected an error for a missing config file")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"starvation_timeout": 10000000000}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Parse("test", []string{"-config", bad}, nil); err == nil {
		t.Error("a bare number is not a duration")
	}
	if _, err := Parse("test", []string{"-mode", "spiral"}, nil); errors.Cause(err) != ErrInvalid {
		t.Errorf("Parse with a bad mode = %v, want ErrInvalid", err)
	}
}
