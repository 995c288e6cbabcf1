package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		x2, y2   float64
		expected float64
	}{
		{"same point", 0, 0, 0, 0, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"vertical", 0, 0, 0, 4, 4},
		{"diagonal 3-4-5", 0, 0, 3, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Distance(tt.x1, tt.y1, tt.x2, tt.y2)
			assert.InDelta(t, tt.expected, result, 0.001)
		})
	}
}

func TestInCaptureRange(t *testing.T) {
	player := &Player{Agent: Agent{X: 100, Y: 100}}

	tests := []struct {
		name     string
		x        float64
		expected bool
	}{
		{"same position", 100, true},
		{"within range", 104, true},
		{"at boundary", 100 + DefaultCaptureRadius, false},
		{"out of range", 120, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pursuer := &Pursuer{Agent: Agent{X: tt.x, Y: 100}}
			assert.Equal(t, tt.expected, InCaptureRange(player, pursuer, DefaultCaptureRadius))
		})
	}
}

func TestProcessCaptures(t *testing.T) {
	tests := []struct {
		name      string
		state     PursuerState
		x         float64
		wantKind  []EventKind
		wantState PursuerState
	}{
		{"frightened in range is eaten", StateFrightened, 102, []EventKind{EventPursuerCaptured}, StateEaten},
		{"chase in range catches player", StateChase, 102, []EventKind{EventPlayerCaught}, StateChase},
		{"scatter in range catches player", StateScatter, 102, []EventKind{EventPlayerCaught}, StateScatter},
		{"eaten passes through", StateEaten, 100, nil, StateEaten},
		{"idle is harmless", StateIdle, 100, nil, StateIdle},
		{"leaving home is harmless", StateLeavingHome, 100, nil, StateLeavingHome},
		{"frightened out of range", StateFrightened, 200, nil, StateFrightened},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := &Player{Agent: Agent{X: 100, Y: 100}}
			p := &Pursuer{ID: Flanker, State: tt.state, Agent: Agent{X: tt.x, Y: 100}}

			events := ProcessCaptures(player, []*Pursuer{p}, DefaultCaptureRadius)

			var kinds []EventKind
			for _, e := range events {
				kinds = append(kinds, e.Kind)
				assert.Equal(t, Flanker, e.Pursuer)
			}
			assert.Equal(t, tt.wantKind, kinds)
			assert.Equal(t, tt.wantState, p.State)
		})
	}
}

func TestProcessCaptures_EveryPair(t *testing.T) {
	player := &Player{Agent: Agent{X: 50, Y: 50}}
	pursuers := []*Pursuer{
		{ID: Chaser, State: StateFrightened, Agent: Agent{X: 51, Y: 50}},
		{ID: Ambusher, State: StateFrightened, Agent: Agent{X: 50, Y: 52}},
		{ID: Flanker, State: StateChase, Agent: Agent{X: 49, Y: 50}},
	}

	events := ProcessCaptures(player, pursuers, DefaultCaptureRadius)
	require.Len(t, events, 3)
	assert.Equal(t, EventPursuerCaptured, events[0].Kind)
	assert.Equal(t, EventPursuerCaptured, events[1].Kind)
	assert.Equal(t, EventPlayerCaught, events[2].Kind)
	assert.Equal(t, 51.0, events[0].X)
}

func TestTileDistance(t *testing.T) {
	assert.Equal(t, 5.0, TileDistance(maze.Point{X: 0, Y: 0}, maze.Point{X: 3, Y: 4}))
}
