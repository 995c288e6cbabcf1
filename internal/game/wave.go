package game

import (
	"encoding/json"
	"fmt"
)

// Phase is the global behavior mode the wave schedule imposes on pursuers.
type Phase int

const (
	PhaseScatter Phase = iota
	PhaseChase
)

func (p Phase) String() string {
	switch p {
	case PhaseChase:
		return "chase"
	default:
		return "scatter"
	}
}

// ParsePhase converts a config name into a Phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "scatter":
		return PhaseScatter, nil
	case "chase":
		return PhaseChase, nil
	default:
		return PhaseScatter, fmt.Errorf("game: unknown phase %q", s)
	}
}

// MarshalJSON serializes Phase as a string.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON deserializes Phase from a string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// State returns the pursuer state that corresponds to the phase.
func (p Phase) State() PursuerState {
	if p == PhaseChase {
		return StateChase
	}
	return StateScatter
}

// WaveEntry is one (phase, duration) step of the schedule.
type WaveEntry struct {
	Phase   Phase
	Seconds float64
}

// ClassicWaves is the arcade level-one schedule. The last entry's duration
// is ignored: the final phase lasts forever.
func ClassicWaves() []WaveEntry {
	return []WaveEntry{
		{PhaseScatter, 7},
		{PhaseChase, 20},
		{PhaseScatter, 7},
		{PhaseChase, 20},
		{PhaseScatter, 5},
		{PhaseChase, 20},
		{PhaseScatter, 5},
		{PhaseChase, 0},
	}
}

// WaveSchedule turns elapsed time into the current scatter/chase phase.
type WaveSchedule struct {
	entries []WaveEntry
	index   int
	elapsed float64
	paused  bool
}

// NewWaveSchedule copies entries into a fresh schedule positioned at the first entry.
func NewWaveSchedule(entries []WaveEntry) *WaveSchedule {
	if len(entries) == 0 {
		entries = ClassicWaves()
	}
	cp := make([]WaveEntry, len(entries))
	copy(cp, entries)
	return &WaveSchedule{entries: cp}
}

// Advance accumulates dt and reports true exactly once per transition.
// A paused schedule does not accumulate time.
func (w *WaveSchedule) Advance(dt float64) bool {
	if w.paused || w.final() {
		return false
	}
	w.elapsed += dt
	cur := w.entries[w.index]
	if w.elapsed+timeEpsilon < cur.Seconds {
		return false
	}
	w.elapsed -= cur.Seconds
	w.index++
	return true
}

func (w *WaveSchedule) final() bool {
	return w.index >= len(w.entries)-1
}

// Phase returns the active phase.
func (w *WaveSchedule) Phase() Phase {
	return w.entries[w.index].Phase
}

// SetPaused freezes or resumes the schedule.
func (w *WaveSchedule) SetPaused(paused bool) {
	w.paused = paused
}

func (w *WaveSchedule) Paused() bool { return w.paused }

func (w *WaveSchedule) Index() int { return w.index }

// Elapsed returns the time spent in the current entry.
func (w *WaveSchedule) Elapsed() float64 { return w.elapsed }

// Reset rewinds to the first entry and unpauses.
func (w *WaveSchedule) Reset() {
	w.index = 0
	w.elapsed = 0
	w.paused = false
}
