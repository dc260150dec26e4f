// Command tetris-stress plays brain games back to back for a fixed duration
// and reports how long the brain survives and how fast it moves.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/plus3/blockfall/brain"
	"github.com/plus3/blockfall/game"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of games played in parallel.")
	width := flag.Int("width", 10, "Board width in cells.")
	height := flag.Int("height", 24, "Board height in cells.")
	adversary := flag.Int("adversary", 0, "Percentage of pieces chosen to be the worst for the brain.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; each further game adds one.")
	debug := flag.Bool("debug", false, "Check board consistency after every move and log each game.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log := logrus.New()
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := game.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Adversary = *adversary
	cfg.Debug = *debug
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("bad configuration")
	}

	weights := brain.DefaultWeights()
	report := &Report{
		Duration:       *duration,
		Workers:        *workers,
		Width:          *width,
		Height:         *height,
		Seed:           *seed,
		Adversary:      *adversary,
		Weights:        weights,
		GCPauseMetrics: *gcPauseMetrics,
	}

	log.WithFields(logrus.Fields{
		"duration": *duration,
		"workers":  *workers,
	}).Info("starting brain stress test")

	runtime.ReadMemStats(&report.MemStatsStart)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if err := runGames(ctx, cfg, weights, *workers, report, log); err != nil {
		log.WithError(err).Fatal("stress test failed")
	}
	report.TotalTime = time.Since(startTime)
	report.GameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.WithField("games", report.Games).Info("simulation finished")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

// runGames plays games on workers goroutines until ctx is done. Game n uses
// seed base+n, so a run is reproducible game by game.
func runGames(ctx context.Context, cfg game.Config, weights brain.Weights, workers int, report *Report, log logrus.FieldLogger) error {
	var (
		mu   sync.Mutex
		next = report.Seed
	)
	nextSeed := func() uint64 {
		mu.Lock()
		defer mu.Unlock()
		s := next
		next++
		return s
	}

	g, ctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for ctx.Err() == nil {
				res, err := playOne(ctx, cfg, weights, nextSeed(), log)
				mu.Lock()
				switch {
				case err == nil:
					report.Add(res)
				case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
					report.Unfinished++
				}
				mu.Unlock()
				if err != nil && ctx.Err() == nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// playOne plays a single game to the end.
func playOne(ctx context.Context, cfg game.Config, weights brain.Weights, seed uint64, log logrus.FieldLogger) (GameResult, error) {
	cfg.Seed = seed
	cfg.Brain = &brain.LameBrain{Weights: weights}
	if cfg.Debug {
		cfg.Logger = log.WithField("seed", seed)
	}

	g, err := game.New(cfg)
	if err != nil {
		return GameResult{}, err
	}

	start := time.Now()
	err = g.Play(ctx)
	if !errors.Is(err, game.ErrGameOver) {
		return GameResult{}, err
	}
	return GameResult{Seed: seed, Stats: g.Stats(), Duration: time.Since(start)}, nil
}
