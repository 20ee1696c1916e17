// Package session holds what an interactive viewer keeps between rounds:
// the game, the persisted pattern memory and the stats store.
package session

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"snake-pilot/ai"
	"snake-pilot/config"
	"snake-pilot/game"
	"snake-pilot/stats"
)

// NewLogger writes human readable logs to out at the configured level.
func NewLogger(cfg config.Config, out io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()
}

type Session struct {
	Config config.Config
	Game   *game.Game
	Store  *stats.Store
	Log    zerolog.Logger

	recorded bool
}

// Open loads the pattern memory and the stats store named in cfg and starts
// a game around them.
func Open(cfg config.Config, log zerolog.Logger, opts ...game.Option) (*Session, error) {
	patterns, err := ai.OpenPatterns(cfg.PatternFile)
	if err != nil {
		return nil, errors.Wrap(err, "open pattern memory")
	}
	store, err := stats.NewStore(cfg.StatsFile, stats.GroupSize)
	if err != nil {
		return nil, errors.Wrap(err, "open stats")
	}

	opts = append([]game.Option{game.WithLogger(log), game.WithPatterns(patterns)}, opts...)
	s := &Session{
		Config: cfg,
		Game:   game.New(cfg, opts...),
		Store:  store,
		Log:    log,
	}
	s.Game.Start()

	log.Info().
		Int("patterns", patterns.Len()).
		Int("records", len(store.Records())).
		Msg("session opened")
	return s, nil
}

// Tick advances the game once and records the round when it ends.
func (s *Session) Tick() game.Event {
	ev := s.Game.Update()
	if ev.Kind == game.Collided {
		s.record()
	}
	return ev
}

// Interval is how long to wait before the next tick.
func (s *Session) Interval() time.Duration {
	cfg := s.Config
	cfg.Autopilot = s.Game.Autopilot
	return cfg.TickInterval(s.Game.IsStarving())
}

// Restart records an unfinished round and starts a new one. Memories carry
// over.
func (s *Session) Restart() {
	if s.Game.Ticks() > 0 {
		s.record()
	}
	s.Game.Start()
	s.recorded = false
}

// TogglePilot switches between the autopilot and manual steering.
func (s *Session) TogglePilot() bool {
	s.Game.Autopilot = !s.Game.Autopilot
	s.Log.Info().Bool("autopilot", s.Game.Autopilot).Msg("pilot toggled")
	return s.Game.Autopilot
}

// TogglePause pauses a running game and resumes a paused one.
func (s *Session) TogglePause() {
	s.Game.Pause(s.Game.Running())
}

func (s *Session) record() {
	if s.recorded {
		return
	}
	s.recorded = true
	res := s.Game.Result(s.Config.Seed)
	if res.Cause == "" {
		res.Cause = "restart"
	}
	s.Store.Add(res)
}

// Close saves the pattern memory and the stats store.
func (s *Session) Close() error {
	if s.Config.PatternFile != "" {
		if err := ai.SavePatterns(s.Game.Pilot().Patterns(), s.Config.PatternFile); err != nil {
			return err
		}
	}
	return s.Store.Save()
}
