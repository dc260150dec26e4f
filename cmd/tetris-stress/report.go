package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/brain"
	"github.com/plus3/blockfall/game"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Workers   int
	Width     int
	Height    int
	Seed      uint64
	Adversary int
	Weights   brain.Weights

	// Results
	Games          int
	Unfinished     int
	TotalPieces    int64
	TotalRows      int64
	Clears         [5]int64
	Best           GameResult
	TotalTime      time.Duration
	GameTime       Stats
	StepTime       StepSummary
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// GameResult is one finished game.
type GameResult struct {
	Seed     uint64
	Stats    game.Stats
	Duration time.Duration
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// StepSummary merges the per-step timings of many games.
type StepSummary struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Total time.Duration
}

func (s *StepSummary) Merge(steps game.StepStats) {
	if steps.Count == 0 {
		return
	}
	if s.Count == 0 || steps.Min < s.Min {
		s.Min = steps.Min
	}
	if steps.Max > s.Max {
		s.Max = steps.Max
	}
	s.Count += steps.Count
	s.Total += steps.Total
	s.Avg = s.Total / time.Duration(s.Count)
}

// Add folds a finished game into the report.
func (r *Report) Add(res GameResult) {
	r.Games++
	r.TotalPieces += res.Stats.Pieces
	r.TotalRows += res.Stats.RowsCleared
	for n, count := range res.Stats.Clears {
		r.Clears[n] += count
	}
	if r.Games == 1 || res.Stats.Pieces > r.Best.Stats.Pieces {
		r.Best = res
	}
	r.GameTime.Samples = append(r.GameTime.Samples, res.Duration)
	r.StepTime.Merge(res.Stats.Steps)
}

// PiecesPerGame is the mean number of pieces placed before the stack topped out.
func (r *Report) PiecesPerGame() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalPieces) / float64(r.Games)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Brain Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Workers:** {{.Workers}}
- **Board:** {{.Width}}x{{.Height}}
- **Base Seed:** {{.Seed}}
- **Adversary:** {{.Adversary}}%
- **Weights:** max height {{.Weights.MaxHeight}}, avg height {{.Weights.AvgHeight}}, holes {{.Weights.Holes}}

## Game Results
- **Finished Games:** {{.Games}} ({{.Unfinished}} cut short)
- **Pieces Placed:** {{.TotalPieces}} ({{printf "%.1f" .PiecesPerGame}} per game)
- **Rows Cleared:** {{.TotalRows}}
- **Clears:** single {{index .Clears 1}}, double {{index .Clears 2}}, triple {{index .Clears 3}}, tetris {{index .Clears 4}}
{{- if .Games}}
- **Longest Game:** seed {{.Best.Seed}}, {{.Best.Stats.Pieces}} pieces, {{.Best.Stats.RowsCleared}} rows
{{- end}}

## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Game Time:**
  - **Avg:** {{.GameTime.Avg}}
  - **Min:** {{.GameTime.Min}}
  - **Max:** {{.GameTime.Max}}
- **Step Time ({{.StepTime.Count}} steps):**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
