package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

func TestEvent_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			"dot",
			Event{Kind: EventDotConsumed, Tile: maze.Point{X: 3, Y: 4}},
			`{"kind":"dot_consumed","tile":{"x":3,"y":4}}`,
		},
		{
			"capture keeps the zero identity",
			Event{Kind: EventPursuerCaptured, Pursuer: Chaser, X: 10, Y: 12},
			`{"kind":"pursuer_captured","pursuer":"chaser","x":10,"y":12}`,
		},
		{
			"phase change",
			Event{Kind: EventPhaseChanged, Phase: PhaseChase},
			`{"kind":"phase_changed","phase":"chase"}`,
		},
		{
			"maze cleared",
			Event{Kind: EventMazeCleared},
			`{"kind":"maze_cleared"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestDirection_JSON(t *testing.T) {
	var d Direction
	require.NoError(t, json.Unmarshal([]byte(`"left"`), &d))
	assert.Equal(t, DirLeft, d)

	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &d))
	assert.Equal(t, DirRight, DirLeft.Opposite())
	assert.Equal(t, DirNone, DirNone.Opposite())
}

func TestParseIdentity(t *testing.T) {
	for id := Chaser; id < PursuerCount; id++ {
		got, err := ParseIdentity(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
	_, err := ParseIdentity("blinky")
	assert.Error(t, err)
}

func TestParsePursuerState(t *testing.T) {
	for st := StateIdle; st <= StateJustLeftHome; st++ {
		got, err := ParsePursuerState(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ParsePursuerState("sleeping")
	assert.Error(t, err)
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	s := newClassicSim(t)
	for i := 0; i < 120; i++ {
		s.Step(DirLeft)
	}
	want := s.Snapshot()

	data, err := json.Marshal(want)
	require.NoError(t, err)
	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)

	var phase Phase
	assert.Error(t, json.Unmarshal([]byte(`"panic"`), &phase))
}
