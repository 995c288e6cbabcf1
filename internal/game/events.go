package game

import (
	"encoding/json"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

// EventKind names a semantic outcome of a simulation step.
type EventKind int

const (
	EventDotConsumed EventKind = iota
	EventPowerPelletConsumed
	EventPursuerCaptured
	EventPlayerCaught
	EventFruitThreshold
	EventMazeCleared
	EventPhaseChanged
	EventFrightenedEnded
)

func (k EventKind) String() string {
	switch k {
	case EventDotConsumed:
		return "dot_consumed"
	case EventPowerPelletConsumed:
		return "power_pellet_consumed"
	case EventPursuerCaptured:
		return "pursuer_captured"
	case EventPlayerCaught:
		return "player_caught"
	case EventFruitThreshold:
		return "fruit_threshold"
	case EventMazeCleared:
		return "maze_cleared"
	case EventPhaseChanged:
		return "phase_changed"
	case EventFrightenedEnded:
		return "frightened_ended"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes EventKind as a string.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Event is returned from Step; which fields are meaningful depends on Kind.
type Event struct {
	Kind EventKind
	// Pursuer is set for EventPursuerCaptured and EventPlayerCaught.
	Pursuer Identity
	Tile    maze.Point
	X, Y    float64
	// Count is the consumed-pickup total for EventFruitThreshold.
	Count int
	Phase Phase
}

type eventJSON struct {
	Kind    EventKind   `json:"kind"`
	Pursuer *Identity   `json:"pursuer,omitempty"`
	Tile    *maze.Point `json:"tile,omitempty"`
	X       float64     `json:"x,omitempty"`
	Y       float64     `json:"y,omitempty"`
	Count   int         `json:"count,omitempty"`
	Phase   *Phase      `json:"phase,omitempty"`
}

// MarshalJSON emits only the fields that apply to the event's kind.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{Kind: e.Kind}
	switch e.Kind {
	case EventDotConsumed, EventPowerPelletConsumed:
		out.Tile = &e.Tile
	case EventPursuerCaptured, EventPlayerCaught:
		out.Pursuer = &e.Pursuer
		out.X, out.Y = e.X, e.Y
	case EventFruitThreshold:
		out.Count = e.Count
		out.Tile = &e.Tile
	case EventPhaseChanged:
		out.Phase = &e.Phase
	}
	return json.Marshal(out)
}
