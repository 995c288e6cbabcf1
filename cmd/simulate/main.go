package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/ugaemi/mazechase-server/internal/config"
	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/session"
)

type runStats struct {
	runIndex int
	seed     int64

	events       map[game.EventKind]int
	firstCaught  uint64
	score        int
	level        int
	remaining    int
	finalTick    uint64
	finalPhase   game.Phase
	finalPursuer [game.PursuerCount]game.PursuerState
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var turnEvery int
	var dumpTuning bool
	var snapshot bool

	flag.IntVar(&runs, "runs", 3, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 1, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&turnEvery, "turn-every", 45, "ticks between random input changes")
	flag.BoolVar(&dumpTuning, "dump-tuning", false, "print the effective tuning as YAML and exit")
	flag.BoolVar(&snapshot, "snapshot", false, "print the final snapshot of each run as JSON")
	flag.Parse()

	cfg := config.Load()
	bundle, err := config.LoadBundle(cfg, config.NewAssets(cfg.AssetsDir))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if dumpTuning {
		out, err := config.MarshalTuning(bundle.Tuning, bundle.Zones)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	if runs <= 0 || ticks <= 0 || turnEvery <= 0 {
		fmt.Fprintln(os.Stderr, "error: -runs, -ticks and -turn-every must be > 0")
		os.Exit(2)
	}

	fmt.Printf("=== Headless Maze Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, snap, err := run(bundle, i+1, seed, ticks, turnEvery)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		printRun(stats)
		if snapshot {
			data, _ := json.MarshalIndent(snap, "", "  ")
			fmt.Println(string(data))
		}
	}
}

// run plays one game with random input. The player is respawned when
// caught and the maze refilled when cleared, like a session with
// unlimited lives.
func run(bundle *config.Bundle, runIndex int, seed int64, ticks, turnEvery int) (runStats, game.Snapshot, error) {
	tuning := bundle.Tuning
	tuning.Seed = seed
	b := *bundle
	b.Tuning = tuning

	sim, err := b.NewSimulation()
	if err != nil {
		return runStats{}, game.Snapshot{}, err
	}

	stats := runStats{runIndex: runIndex, seed: seed, events: make(map[game.EventKind]int)}
	input := rand.New(rand.NewSource(seed))
	dirs := []game.Direction{game.DirUp, game.DirLeft, game.DirDown, game.DirRight}
	intent := game.DirNone
	var scorer session.Scorer
	var elapsed uint64

	for t := 0; t < ticks; t++ {
		if t%turnEvery == 0 {
			intent = dirs[input.Intn(len(dirs))]
		}
		elapsed++
		caught, cleared := false, false
		for _, e := range sim.Step(intent) {
			stats.events[e.Kind]++
			scorer.Apply(e)
			switch e.Kind {
			case game.EventPlayerCaught:
				caught = true
				if stats.firstCaught == 0 {
					stats.firstCaught = elapsed
				}
			case game.EventMazeCleared:
				cleared = true
			}
		}
		switch {
		case cleared:
			sim.NextLevel()
		case caught:
			sim.Respawn()
		}
	}

	snap := sim.Snapshot()
	stats.score = scorer.Score
	stats.level = snap.Level
	stats.remaining = snap.Remaining
	stats.finalTick = elapsed
	stats.finalPhase = snap.Phase
	for id, p := range snap.Pursuers {
		stats.finalPursuer[id] = p.State
	}
	return stats, snap, nil
}

var reportKinds = []game.EventKind{
	game.EventDotConsumed,
	game.EventPowerPelletConsumed,
	game.EventPursuerCaptured,
	game.EventPlayerCaught,
	game.EventFruitThreshold,
	game.EventMazeCleared,
	game.EventPhaseChanged,
	game.EventFrightenedEnded,
}

func printRun(s runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", s.runIndex, s.seed)
	fmt.Printf("ticks=%d score=%d level=%d remaining=%d phase=%s\n",
		s.finalTick, s.score, s.level, s.remaining, s.finalPhase)
	if s.firstCaught > 0 {
		fmt.Printf("first caught at tick %d\n", s.firstCaught)
	}
	for _, k := range reportKinds {
		fmt.Printf("  %-22s %d\n", k.String(), s.events[k])
	}
	for id, st := range s.finalPursuer {
		fmt.Printf("  %-8s %s\n", game.Identity(id).String(), st)
	}
	fmt.Println()
}
