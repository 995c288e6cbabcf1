package game

import "github.com/ugaemi/mazechase-server/internal/maze"

// AgentSnapshot is the serializable movement state of one agent.
type AgentSnapshot struct {
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
	Tile maze.Point `json:"tile"`
	Dir  Direction  `json:"dir"`
}

type PlayerSnapshot struct {
	AgentSnapshot
	Facing Direction `json:"facing"`
	Mouth  float64   `json:"mouth"`
}

type PursuerSnapshot struct {
	AgentSnapshot
	ID     Identity     `json:"id"`
	State  PursuerState `json:"state"`
	EyeDir Direction    `json:"eye_dir"`
	Target maze.Point   `json:"target"`
}

// Snapshot is a comparable copy of everything that evolves during a run.
// Two runs with equal inputs produce equal snapshots at every tick.
type Snapshot struct {
	Tick       uint64                        `json:"tick"`
	Level      int                           `json:"level"`
	Phase      Phase                         `json:"phase"`
	WaveIndex  int                           `json:"wave_index"`
	Frightened float64                       `json:"frightened"`
	Player     PlayerSnapshot                `json:"player"`
	Pursuers   [PursuerCount]PursuerSnapshot `json:"pursuers"`
	Remaining  int                           `json:"remaining"`
	Consumed   int                           `json:"consumed"`
}

func snapshotAgent(a *Agent) AgentSnapshot {
	return AgentSnapshot{X: a.X, Y: a.Y, Tile: a.Tile, Dir: a.Dir}
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       s.tick,
		Level:      s.level,
		Phase:      s.wave.Phase(),
		WaveIndex:  s.wave.Index(),
		Frightened: s.frightened,
		Player: PlayerSnapshot{
			AgentSnapshot: snapshotAgent(&s.player.Agent),
			Facing:        s.player.Facing,
			Mouth:         s.player.MouthAngle,
		},
		Remaining: s.pickups.Remaining(),
		Consumed:  s.pickups.Consumed(),
	}
	for id, p := range s.pursuers {
		snap.Pursuers[id] = PursuerSnapshot{
			AgentSnapshot: snapshotAgent(&p.Agent),
			ID:            p.ID,
			State:         p.State,
			EyeDir:        p.EyeDir,
			Target:        p.Target,
		}
	}
	return snap
}
