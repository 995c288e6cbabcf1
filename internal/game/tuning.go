package game

import (
	"errors"
	"fmt"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

// TileSize is the edge length of one tile in position units.
const TileSize = 8.0

// Movement thresholds (position units).
const (
	DefaultTurnWindow    = 4.0
	DefaultPickupRadius  = 3.0
	DefaultCaptureRadius = 6.0
	centerEpsilon        = 1.0 // an agent this close to a centre counts as on it
)

// Mouth animation (degrees, degrees per second).
const (
	mouthSpeed     = 400.0
	mouthOpenMax   = 45.0
	mouthStillPose = 20.0
)

// timeEpsilon absorbs float drift when summing fixed dt values.
const timeEpsilon = 1e-9

var ErrInvalidTuning = errors.New("game: invalid tuning")

// PursuerSpawn is where a pursuer starts and where it scatters to.
type PursuerSpawn struct {
	Start  maze.Point
	Dir    Direction
	Corner maze.Point
	// Idle pursuers wait inside the house for their release gate.
	Idle bool
}

// Layout pins the maze-specific coordinates the simulation needs.
type Layout struct {
	PlayerStart maze.Point
	PlayerDir   Direction
	Pursuers    [PursuerCount]PursuerSpawn

	// HomeDoor is the checkpoint above the house door that eaten pursuers head for.
	HomeDoor maze.Point
	// HomeTile is the interior tile where an eaten pursuer is revived.
	HomeTile maze.Point
	// HouseExit is the checkpoint a leaving pursuer must reach to rejoin the wave.
	HouseExit maze.Point
	FruitTile maze.Point
}

// ClassicLayout matches maze.Classic.
func ClassicLayout() Layout {
	return Layout{
		PlayerStart: maze.Point{X: 14, Y: 23},
		PlayerDir:   DirLeft,
		Pursuers: [PursuerCount]PursuerSpawn{
			Chaser:   {Start: maze.Point{X: 13, Y: 11}, Dir: DirLeft, Corner: maze.Point{X: 25, Y: -4}},
			Ambusher: {Start: maze.Point{X: 13, Y: 14}, Dir: DirUp, Corner: maze.Point{X: 2, Y: -4}, Idle: true},
			Flanker:  {Start: maze.Point{X: 11, Y: 14}, Dir: DirUp, Corner: maze.Point{X: 27, Y: 31}, Idle: true},
			Moody:    {Start: maze.Point{X: 15, Y: 14}, Dir: DirUp, Corner: maze.Point{X: 0, Y: 31}, Idle: true},
		},
		HomeDoor:  maze.Point{X: 13, Y: 11},
		HomeTile:  maze.Point{X: 13, Y: 14},
		HouseExit: maze.Point{X: 13, Y: 11},
		FruitTile: maze.Point{X: 13, Y: 17},
	}
}

// Tuning holds every recognized simulation option.
type Tuning struct {
	TickRate        int
	MaxFrameSeconds float64

	BasePlayerSpeed       float64
	LevelSpeedMultipliers []float64
	PursuerSpeedRatio     float64

	FrightenedSeconds         float64
	FrightenedSpeedMultiplier float64
	EatenSpeedMultiplier      float64
	TunnelSpeedMultiplier     float64

	TurnWindow    float64
	PickupRadius  float64
	CaptureRadius float64
	// MoodyRadius is the tile distance inside which the moody pursuer retreats.
	MoodyRadius float64

	ReleaseThresholds map[Identity]int
	Waves             []WaveEntry
	FruitThresholds   []int
	Seed              int64

	Layout Layout
}

// DefaultTuning returns the arcade level-one values.
func DefaultTuning() Tuning {
	return Tuning{
		TickRate:                  60,
		MaxFrameSeconds:           0.25,
		BasePlayerSpeed:           75.5,
		LevelSpeedMultipliers:     []float64{0.8, 0.9, 0.9, 0.9, 1.0},
		PursuerSpeedRatio:         0.85,
		FrightenedSeconds:         6,
		FrightenedSpeedMultiplier: 0.5,
		EatenSpeedMultiplier:      2.0,
		TunnelSpeedMultiplier:     0.5,
		TurnWindow:                DefaultTurnWindow,
		PickupRadius:              DefaultPickupRadius,
		CaptureRadius:             DefaultCaptureRadius,
		MoodyRadius:               8,
		ReleaseThresholds: map[Identity]int{
			Ambusher: 0,
			Flanker:  30,
			Moody:    60,
		},
		Waves:           ClassicWaves(),
		FruitThresholds: []int{70, 170},
		Seed:            1,
		Layout:          ClassicLayout(),
	}
}

// Dt is the fixed step length in seconds.
func (t Tuning) Dt() float64 {
	return 1 / float64(t.TickRate)
}

// SpeedMultiplier returns the player speed multiplier for a 1-based level.
// Levels past the end of the table reuse its last value.
func (t Tuning) SpeedMultiplier(level int) float64 {
	if len(t.LevelSpeedMultipliers) == 0 {
		return 1
	}
	i := level - 1
	if i < 0 {
		i = 0
	}
	if i >= len(t.LevelSpeedMultipliers) {
		i = len(t.LevelSpeedMultipliers) - 1
	}
	return t.LevelSpeedMultipliers[i]
}

// Validate checks ranges that would otherwise break the movement engine.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"tick rate", float64(t.TickRate)},
		{"max frame seconds", t.MaxFrameSeconds},
		{"base player speed", t.BasePlayerSpeed},
		{"pursuer speed ratio", t.PursuerSpeedRatio},
		{"frightened seconds", t.FrightenedSeconds},
		{"frightened speed multiplier", t.FrightenedSpeedMultiplier},
		{"eaten speed multiplier", t.EatenSpeedMultiplier},
		{"tunnel speed multiplier", t.TunnelSpeedMultiplier},
		{"turn window", t.TurnWindow},
		{"pickup radius", t.PickupRadius},
		{"capture radius", t.CaptureRadius},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}
	for i, m := range t.LevelSpeedMultipliers {
		if m <= 0 {
			return fmt.Errorf("%w: level %d speed multiplier must be positive", ErrInvalidTuning, i+1)
		}
	}
	if len(t.Waves) == 0 {
		return fmt.Errorf("%w: wave schedule is empty", ErrInvalidTuning)
	}
	for i, w := range t.Waves[:len(t.Waves)-1] {
		if w.Seconds <= 0 {
			return fmt.Errorf("%w: wave %d duration must be positive", ErrInvalidTuning, i)
		}
	}
	for id, n := range t.ReleaseThresholds {
		if n < 0 {
			return fmt.Errorf("%w: %s release threshold is negative", ErrInvalidTuning, id)
		}
	}

	// The fastest agent must not be able to skip a tile centre in one step.
	// Centre arrival is only checked within TurnWindow of the centre, so a
	// step shorter than the window always lands inside it once per tile.
	fastest := t.BasePlayerSpeed * t.PursuerSpeedRatio * max(1, t.EatenSpeedMultiplier)
	for _, m := range t.LevelSpeedMultipliers {
		fastest = max(fastest, t.BasePlayerSpeed*m)
	}
	if step := fastest * t.Dt(); step >= t.TurnWindow {
		return fmt.Errorf("%w: step %.2f exceeds turn window %.2f", ErrInvalidTuning, step, t.TurnWindow)
	}
	return nil
}
