package game

import (
	"encoding/json"
	"fmt"
)

// Identity selects a pursuer's chase strategy.
type Identity int

const (
	Chaser Identity = iota
	Ambusher
	Flanker
	Moody

	PursuerCount = 4
)

func (id Identity) String() string {
	switch id {
	case Chaser:
		return "chaser"
	case Ambusher:
		return "ambusher"
	case Flanker:
		return "flanker"
	case Moody:
		return "moody"
	default:
		return "unknown"
	}
}

// ParseIdentity converts a config or wire name into an Identity.
func ParseIdentity(s string) (Identity, error) {
	for id := Chaser; id < PursuerCount; id++ {
		if id.String() == s {
			return id, nil
		}
	}
	return Chaser, fmt.Errorf("game: unknown pursuer %q", s)
}

// MarshalJSON serializes Identity as a string.
func (id Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON deserializes Identity from a string.
func (id *Identity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseIdentity(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// PursuerState is a pursuer's behavior mode.
type PursuerState int

const (
	StateIdle PursuerState = iota
	StateLeavingHome
	StateScatter
	StateChase
	StateFrightened
	StateEaten
	// StateJustLeftHome is transient; the simulation resolves it to the
	// current wave phase in the same tick.
	StateJustLeftHome
)

func (s PursuerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLeavingHome:
		return "leaving_home"
	case StateScatter:
		return "scatter"
	case StateChase:
		return "chase"
	case StateFrightened:
		return "frightened"
	case StateEaten:
		return "eaten"
	case StateJustLeftHome:
		return "just_left_home"
	default:
		return "unknown"
	}
}

// ParsePursuerState converts a wire name back into a PursuerState.
func ParsePursuerState(name string) (PursuerState, error) {
	for s := StateIdle; s <= StateJustLeftHome; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return StateIdle, fmt.Errorf("game: unknown pursuer state %q", name)
}

// MarshalJSON serializes PursuerState as a string.
func (s PursuerState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes PursuerState from a string.
func (s *PursuerState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, err := ParsePursuerState(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// passesDoor reports whether the house door is open to a pursuer in state s.
func (s PursuerState) passesDoor() bool {
	return s == StateEaten || s == StateLeavingHome
}

// ignoresNoTurnUp reports whether the no-turn-up overlay is lifted for s.
func (s PursuerState) ignoresNoTurnUp() bool {
	return s == StateEaten || s == StateFrightened
}

// followsWave reports whether s tracks the global scatter/chase phase.
func (s PursuerState) followsWave() bool {
	return s == StateScatter || s == StateChase
}
