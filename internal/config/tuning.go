package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/maze"
)

type TuningSpec struct {
	TickRate        int          `yaml:"tick_rate"`
	MaxFrameSeconds float64      `yaml:"max_frame_seconds"`
	Seed            int64        `yaml:"seed"`
	Player          PlayerSpec   `yaml:"player"`
	Pursuers        PursuersSpec `yaml:"pursuers"`
	Movement        MovementSpec `yaml:"movement"`
	Waves           []WaveSpec   `yaml:"waves"`
	FruitThresholds []int        `yaml:"fruit_thresholds"`
	Layout          LayoutSpec   `yaml:"layout"`
}

type PlayerSpec struct {
	BaseSpeed        float64   `yaml:"base_speed"`
	LevelMultipliers []float64 `yaml:"level_multipliers"`
}

type PursuersSpec struct {
	SpeedRatio           float64        `yaml:"speed_ratio"`
	FrightenedSeconds    float64        `yaml:"frightened_seconds"`
	FrightenedMultiplier float64        `yaml:"frightened_multiplier"`
	EatenMultiplier      float64        `yaml:"eaten_multiplier"`
	TunnelMultiplier     float64        `yaml:"tunnel_multiplier"`
	MoodyRadius          float64        `yaml:"moody_radius"`
	ReleaseThresholds    map[string]int `yaml:"release_thresholds"`
}

type MovementSpec struct {
	TurnWindow    float64 `yaml:"turn_window"`
	PickupRadius  float64 `yaml:"pickup_radius"`
	CaptureRadius float64 `yaml:"capture_radius"`
}

type WaveSpec struct {
	Phase   string  `yaml:"phase"`
	Seconds float64 `yaml:"seconds"`
}

type SpawnSpec struct {
	Start  maze.Point `yaml:"start"`
	Dir    string     `yaml:"dir"`
	Corner maze.Point `yaml:"corner"`
	Idle   bool       `yaml:"idle,omitempty"`
}

type LayoutSpec struct {
	PlayerStart maze.Point           `yaml:"player_start"`
	PlayerDir   string               `yaml:"player_dir"`
	Pursuers    map[string]SpawnSpec `yaml:"pursuers"`
	HomeDoor    maze.Point           `yaml:"home_door"`
	HomeTile    maze.Point           `yaml:"home_tile"`
	HouseExit   maze.Point           `yaml:"house_exit"`
	FruitTile   maze.Point           `yaml:"fruit_tile"`
	NoTurnUp    []maze.Region        `yaml:"no_turn_up,omitempty"`
}

// LoadSpec reads a YAML asset into T.
func LoadSpec[T any](assets *Assets, name string) (T, error) {
	var zero T
	data, err := assets.Load(name)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", name, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// ParseTuning decodes YAML over the built-in defaults, so omitted keys keep
// their default values. A pursuer entry under layout replaces that
// pursuer's default spawn as a whole.
func ParseTuning(data []byte) (TuningSpec, error) {
	spec := SpecFromTuning(game.DefaultTuning(), maze.ClassicNoTurnUp)
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return TuningSpec{}, fmt.Errorf("config: unmarshal tuning: %w", err)
	}
	return spec, nil
}

// LoadTuning reads and converts the named tuning asset.
func LoadTuning(assets *Assets, name string) (game.Tuning, []maze.Region, error) {
	data, err := assets.Load(name)
	if err != nil {
		return game.Tuning{}, nil, fmt.Errorf("config: load %s: %w", name, err)
	}
	spec, err := ParseTuning(data)
	if err != nil {
		return game.Tuning{}, nil, err
	}
	t, err := spec.Tuning()
	if err != nil {
		return game.Tuning{}, nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return t, spec.Layout.NoTurnUp, nil
}

// MarshalTuning renders t and the no-turn-up zones as YAML.
func MarshalTuning(t game.Tuning, zones []maze.Region) ([]byte, error) {
	return yaml.Marshal(SpecFromTuning(t, zones))
}

// Tuning converts the spec into validated simulation options.
func (s TuningSpec) Tuning() (game.Tuning, error) {
	t := game.Tuning{
		TickRate:                  s.TickRate,
		MaxFrameSeconds:           s.MaxFrameSeconds,
		BasePlayerSpeed:           s.Player.BaseSpeed,
		LevelSpeedMultipliers:     append([]float64(nil), s.Player.LevelMultipliers...),
		PursuerSpeedRatio:         s.Pursuers.SpeedRatio,
		FrightenedSeconds:         s.Pursuers.FrightenedSeconds,
		FrightenedSpeedMultiplier: s.Pursuers.FrightenedMultiplier,
		EatenSpeedMultiplier:      s.Pursuers.EatenMultiplier,
		TunnelSpeedMultiplier:     s.Pursuers.TunnelMultiplier,
		TurnWindow:                s.Movement.TurnWindow,
		PickupRadius:              s.Movement.PickupRadius,
		CaptureRadius:             s.Movement.CaptureRadius,
		MoodyRadius:               s.Pursuers.MoodyRadius,
		ReleaseThresholds:         make(map[game.Identity]int, len(s.Pursuers.ReleaseThresholds)),
		FruitThresholds:           append([]int(nil), s.FruitThresholds...),
		Seed:                      s.Seed,
	}

	for name, n := range s.Pursuers.ReleaseThresholds {
		id, err := game.ParseIdentity(name)
		if err != nil {
			return game.Tuning{}, fmt.Errorf("release_thresholds: %w", err)
		}
		t.ReleaseThresholds[id] = n
	}

	for i, w := range s.Waves {
		phase, err := game.ParsePhase(w.Phase)
		if err != nil {
			return game.Tuning{}, fmt.Errorf("waves[%d]: %w", i, err)
		}
		t.Waves = append(t.Waves, game.WaveEntry{Phase: phase, Seconds: w.Seconds})
	}

	layout, err := s.Layout.layout()
	if err != nil {
		return game.Tuning{}, fmt.Errorf("layout: %w", err)
	}
	t.Layout = layout

	if err := t.Validate(); err != nil {
		return game.Tuning{}, err
	}
	return t, nil
}

func (l LayoutSpec) layout() (game.Layout, error) {
	dir, err := game.ParseDirection(l.PlayerDir)
	if err != nil {
		return game.Layout{}, fmt.Errorf("player_dir: %w", err)
	}
	out := game.Layout{
		PlayerStart: l.PlayerStart,
		PlayerDir:   dir,
		HomeDoor:    l.HomeDoor,
		HomeTile:    l.HomeTile,
		HouseExit:   l.HouseExit,
		FruitTile:   l.FruitTile,
	}

	seen := 0
	for name, sp := range l.Pursuers {
		id, err := game.ParseIdentity(name)
		if err != nil {
			return game.Layout{}, fmt.Errorf("pursuers: %w", err)
		}
		d, err := game.ParseDirection(sp.Dir)
		if err != nil {
			return game.Layout{}, fmt.Errorf("pursuers.%s.dir: %w", name, err)
		}
		out.Pursuers[id] = game.PursuerSpawn{Start: sp.Start, Dir: d, Corner: sp.Corner, Idle: sp.Idle}
		seen++
	}
	if seen != game.PursuerCount {
		return game.Layout{}, fmt.Errorf("pursuers: want %d entries, got %d", game.PursuerCount, seen)
	}
	return out, nil
}

// SpecFromTuning is the inverse of TuningSpec.Tuning.
func SpecFromTuning(t game.Tuning, zones []maze.Region) TuningSpec {
	s := TuningSpec{
		TickRate:        t.TickRate,
		MaxFrameSeconds: t.MaxFrameSeconds,
		Seed:            t.Seed,
		Player: PlayerSpec{
			BaseSpeed:        t.BasePlayerSpeed,
			LevelMultipliers: append([]float64(nil), t.LevelSpeedMultipliers...),
		},
		Pursuers: PursuersSpec{
			SpeedRatio:           t.PursuerSpeedRatio,
			FrightenedSeconds:    t.FrightenedSeconds,
			FrightenedMultiplier: t.FrightenedSpeedMultiplier,
			EatenMultiplier:      t.EatenSpeedMultiplier,
			TunnelMultiplier:     t.TunnelSpeedMultiplier,
			MoodyRadius:          t.MoodyRadius,
			ReleaseThresholds:    make(map[string]int, len(t.ReleaseThresholds)),
		},
		Movement: MovementSpec{
			TurnWindow:    t.TurnWindow,
			PickupRadius:  t.PickupRadius,
			CaptureRadius: t.CaptureRadius,
		},
		FruitThresholds: append([]int(nil), t.FruitThresholds...),
		Layout: LayoutSpec{
			PlayerStart: t.Layout.PlayerStart,
			PlayerDir:   t.Layout.PlayerDir.String(),
			Pursuers:    make(map[string]SpawnSpec, game.PursuerCount),
			HomeDoor:    t.Layout.HomeDoor,
			HomeTile:    t.Layout.HomeTile,
			HouseExit:   t.Layout.HouseExit,
			FruitTile:   t.Layout.FruitTile,
			NoTurnUp:    append([]maze.Region(nil), zones...),
		},
	}
	for id, n := range t.ReleaseThresholds {
		s.Pursuers.ReleaseThresholds[id.String()] = n
	}
	for _, w := range t.Waves {
		s.Waves = append(s.Waves, WaveSpec{Phase: w.Phase.String(), Seconds: w.Seconds})
	}
	for id, sp := range t.Layout.Pursuers {
		s.Layout.Pursuers[game.Identity(id).String()] = SpawnSpec{
			Start:  sp.Start,
			Dir:    sp.Dir.String(),
			Corner: sp.Corner,
			Idle:   sp.Idle,
		}
	}
	return s
}
