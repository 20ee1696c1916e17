package bench

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"snake-pilot/config"
	"snake-pilot/stats"
)

func benchConfig() config.Config {
	cfg := config.Default()
	cfg.GridSize = 20
	cfg.Difficulty = 2
	cfg.Seed = 17
	return cfg
}

func TestRunnerPlaysEveryGame(t *testing.T) {
	store, err := stats.NewStore("", 0)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(benchConfig(), Options{Games: 4, Workers: 2, MaxTicks: 150}, store, zerolog.Nop())

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, res := range results {
		if res.Seed != 17+uint64(i) {
			t.Errorf("game %d seed = %d", i, res.Seed)
		}
		switch res.Cause {
		case CauseStepCap:
			if res.Ticks != 150 {
				t.Errorf("game %d hit the step cap after %d ticks", i, res.Ticks)
			}
		case "wall", "self":
			if res.Ticks == 0 || res.Ticks > 150 {
				t.Errorf("game %d collided after %d ticks", i, res.Ticks)
			}
		default:
			t.Errorf("game %d cause = %q", i, res.Cause)
		}
		if res.Length < 1 || !res.EndTime.After(res.StartTime) {
			t.Errorf("game %d result = %+v", i, res)
		}
	}
	if got := store.Summary().Games; got != 4 {
		t.Errorf("store has %d games, want 4", got)
	}
}

func TestRunnerIsReproducible(t *testing.T) {
	run := func() []stats.Result {
		r := NewRunner(benchConfig(), Options{Games: 3, Workers: 3, MaxTicks: 120}, nil, zerolog.Nop())
		results, err := r.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return results
	}
	first, second := run(), run()
	for i := range first {
		a, b := first[i], second[i]
		if a.Score != b.Score || a.Ticks != b.Ticks || a.Cause != b.Cause || a.Length != b.Length {
			t.Errorf("game %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(benchConfig(), Options{Games: 5, Workers: 1, MaxTicks: 100}, nil, zerolog.Nop())
	results, err := r.Run(ctx)
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from a cancelled run", len(results))
	}
}
