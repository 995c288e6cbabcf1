package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

var ErrInvalidLayout = errors.New("game: invalid layout")

// Simulation owns one run of the maze chase and advances it in fixed steps.
// It is not safe for concurrent use.
type Simulation struct {
	tuning  Tuning
	grid    *maze.Grid
	pickups *Pickups
	wave    *WaveSchedule
	gate    ReleaseGate
	rng     *rand.Rand

	player   *Player
	pursuers [PursuerCount]*Pursuer

	level      int
	tick       uint64
	elapsed    float64
	frightened float64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithReleaseGate replaces the threshold gate built from the tuning.
func WithReleaseGate(g ReleaseGate) Option {
	return func(s *Simulation) {
		s.gate = g
	}
}

// WithLevel starts the run at a level other than 1.
func WithLevel(level int) Option {
	return func(s *Simulation) {
		if level > 0 {
			s.level = level
		}
	}
}

// NewSimulation validates the tuning against grid and places every agent
// on its start tile.
func NewSimulation(grid *maze.Grid, t Tuning, opts ...Option) (*Simulation, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := validateLayout(grid, t.Layout); err != nil {
		return nil, err
	}

	s := &Simulation{
		tuning: t,
		grid:   grid,
		level:  1,
		gate:   ThresholdGate(t.ReleaseThresholds),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pickups = NewPickups(grid)
	s.wave = NewWaveSchedule(t.Waves)
	s.rng = rand.New(rand.NewSource(t.Seed))
	s.player = NewPlayer(t.Layout.PlayerStart, t.Layout.PlayerDir, s.playerSpeed(), t)
	for id := Chaser; id < PursuerCount; id++ {
		s.pursuers[id] = NewPursuer(id, t.Layout.Pursuers[id], t.Layout, t)
	}
	s.spawn()
	return s, nil
}

func validateLayout(g *maze.Grid, l Layout) error {
	check := func(name string, pt maze.Point, blocked bool) error {
		if !g.InBounds(pt.X, pt.Y) {
			return fmt.Errorf("%w: %s %v is outside the %dx%d maze", ErrInvalidLayout, name, pt, g.Width(), g.Height())
		}
		if blocked {
			return fmt.Errorf("%w: %s %v is not walkable", ErrInvalidLayout, name, pt)
		}
		return nil
	}
	if err := check("player start", l.PlayerStart, g.IsBlockingForPlayer(l.PlayerStart.X, l.PlayerStart.Y)); err != nil {
		return err
	}
	for id, sp := range l.Pursuers {
		name := Identity(id).String() + " start"
		if err := check(name, sp.Start, g.IsBlockingForPursuer(sp.Start.X, sp.Start.Y, true)); err != nil {
			return err
		}
	}
	houseTiles := []struct {
		name string
		pt   maze.Point
	}{
		{"home door", l.HomeDoor},
		{"home tile", l.HomeTile},
		{"house exit", l.HouseExit},
	}
	for _, h := range houseTiles {
		if err := check(h.name, h.pt, g.IsBlockingForPursuer(h.pt.X, h.pt.Y, true)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) playerSpeed() float64 {
	return s.tuning.BasePlayerSpeed * s.tuning.SpeedMultiplier(s.level)
}

// spawn puts every agent on its start tile. Pursuers that do not wait in
// the house join the current wave phase.
func (s *Simulation) spawn() {
	l := s.tuning.Layout
	s.player.Spawn(l.PlayerStart, l.PlayerDir, s.playerSpeed())
	for id, p := range s.pursuers {
		sp := l.Pursuers[id]
		state := s.wave.Phase().State()
		if sp.Idle {
			state = StateIdle
		}
		p.Spawn(sp.Dir, state)
	}
}

// Step advances the simulation by one fixed tick with the given intent and
// returns the events it produced, in order.
func (s *Simulation) Step(intent Direction) []Event {
	dt := s.tuning.Dt()
	s.tick++
	s.elapsed += dt

	var events []Event
	if s.tickFrightened(dt) {
		events = append(events, Event{Kind: EventFrightenedEnded})
	}

	if s.wave.Advance(dt) {
		phase := s.wave.Phase()
		for _, p := range s.pursuers {
			if p.State.followsWave() {
				p.SetState(phase.State())
				p.Reverse()
			}
		}
		events = append(events, Event{Kind: EventPhaseChanged, Phase: phase})
	}

	events = s.stepPlayer(dt, intent, events)
	s.release()

	view := s.player.View()
	roster := s.Roster()
	for _, p := range s.pursuers {
		s.settle(p)
		p.Update(dt, s.grid, &s.tuning, view, roster, s.rng)
		s.settle(p)
	}

	return append(events, ProcessCaptures(s.player, s.pursuers[:], s.tuning.CaptureRadius)...)
}

// tickFrightened runs the frightened countdown and reports expiry.
func (s *Simulation) tickFrightened(dt float64) bool {
	if s.frightened <= 0 {
		return false
	}
	s.frightened -= dt
	if s.frightened > timeEpsilon {
		return false
	}
	s.frightened = 0
	s.wave.SetPaused(false)
	phase := s.wave.Phase().State()
	for _, p := range s.pursuers {
		if p.State != StateFrightened {
			continue
		}
		// A pursuer frightened before it got out of the house resumes leaving.
		if s.grid.IsHouse(p.Tile.X, p.Tile.Y) {
			p.SetState(StateLeavingHome)
		} else {
			p.SetState(phase)
		}
	}
	return true
}

func (s *Simulation) stepPlayer(dt float64, intent Direction, events []Event) []Event {
	pickup := s.player.Update(dt, intent, s.grid, s.pickups)
	if pickup == PickupNone {
		return events
	}
	tile := s.player.Tile
	if pickup == PickupPowerPellet {
		events = append(events, Event{Kind: EventPowerPelletConsumed, Tile: tile})
		s.frighten()
	} else {
		events = append(events, Event{Kind: EventDotConsumed, Tile: tile})
	}

	consumed := s.pickups.Consumed()
	for _, n := range s.tuning.FruitThresholds {
		if n == consumed {
			events = append(events, Event{Kind: EventFruitThreshold, Count: n, Tile: s.tuning.Layout.FruitTile})
		}
	}
	if s.pickups.Remaining() == 0 {
		events = append(events, Event{Kind: EventMazeCleared, Tile: tile})
	}
	return events
}

// frighten starts or restarts the frightened countdown.
func (s *Simulation) frighten() {
	s.wave.SetPaused(true)
	s.frightened = s.tuning.FrightenedSeconds
	for _, p := range s.pursuers {
		if p.State == StateIdle || p.State == StateEaten {
			continue
		}
		p.SetState(StateFrightened)
		p.Reverse()
	}
}

func (s *Simulation) release() {
	status := ReleaseStatus{Consumed: s.pickups.Consumed(), Elapsed: s.elapsed, Level: s.level}
	for _, p := range s.pursuers {
		if p.State == StateIdle && s.gate.Release(p.ID, status) {
			p.SetState(StateLeavingHome)
		}
	}
}

// settle resolves the transient JustLeftHome state to the wave phase.
func (s *Simulation) settle(p *Pursuer) {
	if p.State == StateJustLeftHome {
		p.SetState(s.wave.Phase().State())
	}
}

// Roster returns the per-tick view of every pursuer.
func (s *Simulation) Roster() Roster {
	var r Roster
	for id, p := range s.pursuers {
		r[id] = p.View()
	}
	return r
}

// Respawn returns every agent to its start after the player is caught.
// Pickups, level and wave progress are kept; frightened mode ends.
func (s *Simulation) Respawn() {
	s.frightened = 0
	s.wave.SetPaused(false)
	s.spawn()
}

// Reset restarts the run from level 1 with a full maze.
func (s *Simulation) Reset() {
	s.level = 1
	s.restart()
	s.rng = rand.New(rand.NewSource(s.tuning.Seed))
}

// NextLevel refills the maze and rewinds the wave for the next level.
func (s *Simulation) NextLevel() {
	s.level++
	s.restart()
}

func (s *Simulation) restart() {
	s.tick = 0
	s.elapsed = 0
	s.frightened = 0
	s.pickups.Reset(s.grid)
	s.wave.Reset()
	s.spawn()
}

// Player exposes the player agent for read-only inspection.
func (s *Simulation) Player() *Player { return s.player }

// Pursuer returns the pursuer with the given identity.
func (s *Simulation) Pursuer(id Identity) *Pursuer { return s.pursuers[id] }

func (s *Simulation) Grid() *maze.Grid { return s.grid }

func (s *Simulation) Pickups() *Pickups { return s.pickups }

func (s *Simulation) Wave() *WaveSchedule { return s.wave }

func (s *Simulation) Level() int { return s.level }

func (s *Simulation) Tick() uint64 { return s.tick }

// FrightenedRemaining is the countdown left, zero when not frightened.
func (s *Simulation) FrightenedRemaining() float64 { return s.frightened }

func (s *Simulation) Tuning() Tuning { return s.tuning }
