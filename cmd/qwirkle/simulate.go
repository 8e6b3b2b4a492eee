package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/qwirkleio/qwirkle/estimator"
	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/movegen"
	"github.com/qwirkleio/qwirkle/solver"
)

// gameReport is one line of simulate's JSON-lines output.
type gameReport struct {
	ID          string  `json:"id"`
	Seed        int64   `json:"seed"`
	Player1     string  `json:"player1"`
	Player2     string  `json:"player2"`
	Moves       int     `json:"moves"`
	Winner      int     `json:"winner"` // -1 for tie
	Score1      int     `json:"score1"`
	Score2      int     `json:"score2"`
	TotalMoves  int     `json:"total_moves"`
	DurationSec float64 `json:"duration_sec"`
}

// batchEntry is one line of a -config manifest: an explicit
// seed/strategy pairing, letting a caller script a fixed tournament
// instead of the uniform -p1/-p2/-seed sweep.
type batchEntry struct {
	Seed int64  `yaml:"seed"`
	P1   string `yaml:"p1"`
	P2   string `yaml:"p2"`
}

func loadManifest(path string) ([]batchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var entries []batchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return entries, nil
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	n := fs.Int("n", 1, "number of games to simulate")
	p1 := fs.String("p1", "greedy", "player 1 strategy: greedy|random|weighted|scripted")
	p2 := fs.String("p2", "greedy", "player 2 strategy: greedy|random|weighted|scripted")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "number of concurrent games")
	seed := fs.Int64("seed", 0, "base seed; each game uses seed+i")
	outPath := fs.String("o", "-", "output path, - for stdout")
	configPath := fs.String("config", "", "optional YAML manifest of {seed, p1, p2} entries, overriding -n/-p1/-p2/-seed")
	scriptPath := fs.String("script", "", "Lua script for the scripted strategy; without it, scripted plays as greedy")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scriptSource, err := loadScript(*scriptPath)
	if err != nil {
		return err
	}

	var entries []batchEntry
	if *configPath != "" {
		var err error
		entries, err = loadManifest(*configPath)
		if err != nil {
			return err
		}
	} else {
		entries = make([]batchEntry, *n)
		for i := range entries {
			entries[i] = batchEntry{Seed: *seed + int64(i), P1: *p1, P2: *p2}
		}
	}

	out := os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var mu sync.Mutex
	enc := json.NewEncoder(out)
	reports := make([]gameReport, len(entries))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e := entries[i]
				report := simulateOneGame(e.Seed, e.P1, e.P2, scriptSource)
				reports[i] = report
				mu.Lock()
				_ = enc.Encode(report)
				mu.Unlock()
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	printSummary(reports)
	return nil
}

// printSummary reports mean/stddev of game length and score margin
// across the batch, to stderr so it never pollutes the JSON-lines
// stdout stream.
func printSummary(reports []gameReport) {
	if len(reports) == 0 {
		return
	}
	lengths := make([]float64, len(reports))
	margins := make([]float64, len(reports))
	for i, r := range reports {
		lengths[i] = float64(r.TotalMoves)
		margins[i] = float64(r.Score1 - r.Score2)
	}
	meanLen, stddevLen := stat.MeanStdDev(lengths, nil)
	meanMargin, stddevMargin := stat.MeanStdDev(margins, nil)
	fmt.Fprintf(os.Stderr, "games=%d moves: mean=%.1f stddev=%.1f | score margin (p1-p2): mean=%.1f stddev=%.1f\n",
		len(reports), meanLen, stddevLen, meanMargin, stddevMargin)
}

func simulateOneGame(seed int64, p1Name, p2Name, scriptSource string) gameReport {
	start := time.Now()
	g := game.NewGame(seed)
	solvers := [game.NumPlayers]solver.Solver{
		solver.SolverByNameWithScript(p1Name, seed+1, scriptSource),
		solver.SolverByNameWithScript(p2Name, seed+2, scriptSource),
	}

	moves := 0
	for !g.IsOver() && moves < estimator.MaxTurnsPerPlayout {
		player := g.CurrentPlayer()
		hand := g.CurrentHand().TilesUnsafe()
		candidates := movegen.GenerateAllMoves(g.Board(), hand)
		if chosen, ok := solvers[player].SelectMove(g, candidates); ok {
			g.PlayTilesPrevalidated(chosen.Placements, chosen.Score)
		} else if !g.SwapTiles([]int{0}) {
			break
		}
		moves++
	}

	winner := -1
	if w, ok := g.Winner(); ok {
		winner = w
	}
	scores := g.Scores()
	return gameReport{
		ID:          uuid.NewString(),
		Seed:        seed,
		Player1:     p1Name,
		Player2:     p2Name,
		Moves:       moves,
		Winner:      winner,
		Score1:      scores[0],
		Score2:      scores[1],
		TotalMoves:  moves,
		DurationSec: time.Since(start).Seconds(),
	}
}
