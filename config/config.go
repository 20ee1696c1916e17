// Package config holds the settings shared by the snakepilot commands.
// Values come from the defaults, then an optional JSON file, then flags.
package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"snake-pilot/game/types"
)

// ErrInvalid is returned by Validate for out of range settings.
var ErrInvalid = errors.New("invalid config")

// speedSteps are the tick intervals of the four speed settings, slowest first.
var speedSteps = [...]time.Duration{
	150 * time.Millisecond,
	100 * time.Millisecond,
	70 * time.Millisecond,
	50 * time.Millisecond,
}

type Config struct {
	GridSize          int           `json:"grid_size"`
	Mode              string        `json:"mode"`
	Difficulty        int           `json:"difficulty"`
	Speed             int           `json:"speed"`
	Autopilot         bool          `json:"autopilot"`
	StarvationTimeout time.Duration `json:"-"`
	Seed              uint64        `json:"seed"`
	StatsFile         string        `json:"stats_file"`
	PatternFile       string        `json:"pattern_file"`
	LogLevel          string        `json:"log_level"`

	// File is the JSON file the settings were read from, if any.
	File string `json:"-"`
}

func Default() Config {
	return Config{
		GridSize:          types.DefaultGridSize,
		Mode:              types.Bounded.String(),
		Difficulty:        int(types.Medium),
		Speed:             2,
		Autopilot:         true,
		StarvationTimeout: 10 * time.Second,
		Seed:              uint64(time.Now().UnixNano()),
		StatsFile:         "data/stats.json",
		PatternFile:       "data/patterns.json",
		LogLevel:          "info",
	}
}

// UnmarshalJSON reads the starvation timeout as a duration string such as
// "10s".
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		StarvationTimeout string `json:"starvation_timeout"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.StarvationTimeout == "" {
		return nil
	}
	d, err := time.ParseDuration(aux.StarvationTimeout)
	if err != nil {
		return errors.Wrap(err, "starvation_timeout")
	}
	c.StarvationTimeout = d
	return nil
}

// Load reads a JSON file over cfg. Keys missing from the file keep their
// current values.
func Load(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "read config %s", filename)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "decode config %s", filename)
	}
	cfg.File = filename
	return nil
}

// Bind registers one flag per setting on fs, writing into cfg.
func Bind(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.File, "config", cfg.File, "JSON config file")
	fs.IntVar(&cfg.GridSize, "grid", cfg.GridSize, "Grid side in cells")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Board mode: bounded or toroidal")
	fs.IntVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "Difficulty from 1 (easy) to 4 (extreme)")
	fs.IntVar(&cfg.Speed, "speed", cfg.Speed, "Speed setting from 1 (slow) to 4 (fast)")
	fs.BoolVar(&cfg.Autopilot, "autopilot", cfg.Autopilot, "Let the pilot steer")
	fs.DurationVar(&cfg.StarvationTimeout, "starvation", cfg.StarvationTimeout, "Time without food before the snake starves")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	fs.StringVar(&cfg.StatsFile, "stats", cfg.StatsFile, "Stats file, empty to disable")
	fs.StringVar(&cfg.PatternFile, "patterns", cfg.PatternFile, "Pattern memory file, empty to disable")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
}

// Parse builds a Config from the defaults, the file named by -config and the
// remaining flags, in that order of precedence. bind may register extra
// command specific flags on the set.
func Parse(name string, args []string, bind func(*flag.FlagSet)) (Config, error) {
	cfg := Default()
	fs := newFlagSet(name, &cfg, bind)
	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parse flags")
	}
	if cfg.File != "" {
		file := cfg.File
		cfg = Default()
		if err := Load(file, &cfg); err != nil {
			return cfg, err
		}
		// Flags win over the file.
		fs = newFlagSet(name, &cfg, bind)
		if err := fs.Parse(args); err != nil {
			return cfg, errors.Wrap(err, "parse flags")
		}
	}
	return cfg, cfg.Validate()
}

func newFlagSet(name string, cfg *Config, bind func(*flag.FlagSet)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	Bind(fs, cfg)
	if bind != nil {
		bind(fs)
	}
	return fs
}

func (c Config) Validate() error {
	if c.GridSize < 5 || c.GridSize > 200 {
		return errors.Wrapf(ErrInvalid, "grid size %d out of range", c.GridSize)
	}
	if _, ok := types.ParseMode(c.Mode); !ok {
		return errors.Wrapf(ErrInvalid, "unknown mode %q", c.Mode)
	}
	if !types.Difficulty(c.Difficulty).Valid() {
		return errors.Wrapf(ErrInvalid, "difficulty %d out of range", c.Difficulty)
	}
	if c.Speed < 1 || c.Speed > len(speedSteps) {
		return errors.Wrapf(ErrInvalid, "speed %d out of range", c.Speed)
	}
	if c.StarvationTimeout <= 0 {
		return errors.Wrapf(ErrInvalid, "starvation timeout %v", c.StarvationTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalid, "log level %q", c.LogLevel)
	}
	return nil
}

// Grid returns the board described by the config. An unknown mode falls back
// to bounded.
func (c Config) Grid() types.Grid {
	mode, _ := types.ParseMode(c.Mode)
	return types.NewGrid(c.GridSize, mode)
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// TickInterval is the time between moves. Toroidal boards run faster, the
// autopilot faster still, and a starving snake speeds up once more.
func (c Config) TickInterval(starving bool) time.Duration {
	step := min(max(c.Speed, 1), len(speedSteps))
	speed := speedSteps[step-1]
	if mode, _ := types.ParseMode(c.Mode); mode == types.Toroidal {
		speed = max(20*time.Millisecond, scale(speed, 7, 10))
	}
	if c.Autopilot {
		speed = max(10*time.Millisecond, scale(speed, 4, 5))
	}
	if starving {
		speed = max(10*time.Millisecond, scale(speed, 4, 5))
	}
	return speed
}

func scale(d time.Duration, num, den int64) time.Duration {
	return d * time.Duration(num) / time.Duration(den)
}
