package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"snake-pilot/bench"
	"snake-pilot/config"
	"snake-pilot/session"
	"snake-pilot/stats"
)

func main() {
	var opts bench.Options
	cfg, err := config.Parse("snakepilot-bench", os.Args[1:], func(fs *flag.FlagSet) {
		fs.IntVar(&opts.Games, "games", 100, "Number of games to play")
		fs.IntVar(&opts.Workers, "workers", 0, "Games played at once, 0 for one per CPU")
		fs.Uint64Var(&opts.MaxTicks, "max-ticks", 20000, "Stop a game after this many ticks, 0 for no limit")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := session.NewLogger(cfg, os.Stderr)

	store, err := stats.NewStore(cfg.StatsFile, stats.GroupSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stats")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, err := bench.NewRunner(cfg, opts, store, log).Run(ctx)
	if err != nil {
		log.Warn().Err(err).Int("played", len(results)).Msg("bench interrupted")
	}

	causes := make(map[string]int)
	for _, res := range results {
		causes[res.Cause]++
	}
	keys := maps.Keys(causes)
	slices.Sort(keys)

	sum := store.Summary()
	fmt.Printf("played %d games in %s (%dx%d %s)\n", len(results), time.Since(start).Round(time.Millisecond), cfg.GridSize, cfg.GridSize, cfg.Mode)
	fmt.Printf("score  avg %.1f  median %.1f  stddev %.1f  max %d\n", sum.AverageScore, sum.MedianScore, sum.ScoreStdDev, sum.MaxScore)
	fmt.Printf("games recorded %d\n", sum.Games)
	for _, k := range keys {
		fmt.Printf("  %-8s %d\n", k, causes[k])
	}

	if err := store.Save(); err != nil {
		log.Fatal().Err(err).Msg("failed to save stats")
	}
}
