package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

// twoCorridors keeps the player on row 1 and the pursuers on row 3, so
// they can never meet.
const twoCorridors = `
##########
#        #
##########
#        #
##########
`

func mustParse(t *testing.T, text string) *maze.Grid {
	t.Helper()
	g, err := maze.Parse(text)
	require.NoError(t, err)
	return g
}

// isolatedTuning places the player on row 1 and every pursuer on row 3.
// Only the chaser is active; the others never pass their release gate.
func isolatedTuning() Tuning {
	t := DefaultTuning()
	t.Layout = Layout{
		PlayerStart: maze.Point{X: 1, Y: 1},
		PlayerDir:   DirRight,
		Pursuers: [PursuerCount]PursuerSpawn{
			Chaser:   {Start: maze.Point{X: 4, Y: 3}, Dir: DirLeft, Corner: maze.Point{X: 0, Y: 3}},
			Ambusher: {Start: maze.Point{X: 6, Y: 3}, Dir: DirUp, Idle: true},
			Flanker:  {Start: maze.Point{X: 7, Y: 3}, Dir: DirUp, Idle: true},
			Moody:    {Start: maze.Point{X: 8, Y: 3}, Dir: DirUp, Idle: true},
		},
		HomeDoor:  maze.Point{X: 7, Y: 3},
		HomeTile:  maze.Point{X: 7, Y: 3},
		HouseExit: maze.Point{X: 7, Y: 3},
		FruitTile: maze.Point{X: 5, Y: 1},
	}
	t.ReleaseThresholds = map[Identity]int{Ambusher: 1000, Flanker: 1000, Moody: 1000}
	return t
}

func newIsolatedSim(t *testing.T, text string) *Simulation {
	t.Helper()
	s, err := NewSimulation(mustParse(t, text), isolatedTuning())
	require.NoError(t, err)
	return s
}

func newClassicSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := NewSimulation(maze.Classic(), DefaultTuning())
	require.NoError(t, err)
	return s
}

// requireTilesConsistent checks that every agent's tile matches its position.
func requireTilesConsistent(t *testing.T, s *Simulation) {
	t.Helper()
	p := s.Player()
	require.Equal(t, TileOf(p.X, p.Y), p.Tile, "player tile at tick %d", s.Tick())
	for id := Chaser; id < PursuerCount; id++ {
		q := s.Pursuer(id)
		require.Equal(t, TileOf(q.X, q.Y), q.Tile, "%s tile at tick %d", id, s.Tick())
	}
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
