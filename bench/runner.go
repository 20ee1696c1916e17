// Package bench plays many headless games in parallel to measure the pilot.
package bench

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"snake-pilot/config"
	"snake-pilot/game"
	"snake-pilot/stats"
)

// CauseStepCap marks a game stopped by the tick limit rather than a collision.
const CauseStepCap = "step-cap"

// Options controls a bench run.
type Options struct {
	// Games is the number of games to play.
	Games int
	// Workers bounds how many games run at once. Zero uses one per CPU.
	Workers int
	// MaxTicks stops a game that is still alive. Zero means no limit.
	MaxTicks uint64
}

// Runner plays independent games, one pilot per game, and records each
// outcome in a stats store.
type Runner struct {
	cfg   config.Config
	opts  Options
	store *stats.Store
	log   zerolog.Logger

	semaphore chan struct{}
}

func NewRunner(cfg config.Config, opts Options, store *stats.Store, log zerolog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Runner{
		cfg:       cfg,
		opts:      opts,
		store:     store,
		log:       log,
		semaphore: make(chan struct{}, opts.Workers),
	}
}

// Run plays every game and returns their results in game order. A cancelled
// context stops scheduling new games and cuts running ones short; the results
// gathered so far are returned with the context error.
func (r *Runner) Run(ctx context.Context) ([]stats.Result, error) {
	results := make([]stats.Result, r.opts.Games)
	played := make([]bool, r.opts.Games)
	var wg sync.WaitGroup

schedule:
	for i := 0; i < r.opts.Games; i++ {
		select {
		case <-ctx.Done():
			break schedule
		case r.semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-r.semaphore }()

			res, ok := r.play(ctx, idx)
			if !ok {
				return
			}
			results[idx] = res
			played[idx] = true
			if r.store != nil {
				r.store.Add(res)
			}
		}(i)
	}
	wg.Wait()

	out := results[:0]
	for i, res := range results {
		if played[i] {
			out = append(out, res)
		}
	}
	return out, ctx.Err()
}

// play runs one game on a virtual clock that advances by the tick interval,
// so starvation behaves as it would in real time. ok is false when the
// context ended the game.
func (r *Runner) play(ctx context.Context, idx int) (stats.Result, bool) {
	cfg := r.cfg
	cfg.Seed = r.cfg.Seed + uint64(idx)
	clock := time.Unix(0, 0).UTC()
	now := func() time.Time { return clock }

	g := game.New(cfg, game.WithClock(now), game.WithLogger(r.log.With().Int("bench", idx).Logger()))
	g.Start()

	cause := CauseStepCap
	for r.opts.MaxTicks == 0 || g.Ticks() < r.opts.MaxTicks {
		if g.Ticks()%64 == 0 && ctx.Err() != nil {
			return stats.Result{}, false
		}
		clock = clock.Add(cfg.TickInterval(g.IsStarving()))
		if ev := g.Update(); ev.Kind == game.Collided {
			cause = ev.Collision.String()
			break
		}
	}

	res := g.Result(cfg.Seed)
	res.Cause = cause
	r.log.Debug().
		Int("game", idx).
		Int("score", res.Score).
		Uint64("ticks", res.Ticks).
		Str("cause", cause).
		Msg("bench game finished")
	return res, true
}
