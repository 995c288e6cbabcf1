package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

// crossroads has one four-way junction at (2,2).
const crossroads = `
#####
## ##
#   #
## ##
#####
`

func newTestPursuer(id Identity, start maze.Point, dir Direction, state PursuerState) *Pursuer {
	p := NewPursuer(id, PursuerSpawn{Start: start, Corner: maze.Point{X: 0, Y: 0}}, ClassicLayout(), DefaultTuning())
	p.Spawn(dir, state)
	return p
}

func TestPursuer_TieBreakOrder(t *testing.T) {
	g := mustParse(t, crossroads)

	tests := []struct {
		name   string
		target maze.Point
		want   Direction
	}{
		{"all equal picks up", maze.Point{X: 2, Y: 2}, DirUp},
		{"up and left tie", maze.Point{X: 1, Y: 1}, DirUp},
		{"left and down tie", maze.Point{X: 1, Y: 3}, DirLeft},
		{"down and right tie", maze.Point{X: 3, Y: 3}, DirDown},
		{"right strictly closest", maze.Point{X: 9, Y: 2}, DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPursuer(Chaser, maze.Point{X: 2, Y: 2}, DirNone, StateScatter)
			p.Target = tt.target
			assert.Equal(t, tt.want, p.choose(g, nil))
		})
	}
}

func TestPursuer_ExcludesReverseUnlessStationary(t *testing.T) {
	g := mustParse(t, crossroads)

	p := newTestPursuer(Chaser, maze.Point{X: 2, Y: 2}, DirRight, StateScatter)
	p.Target = maze.Point{X: 0, Y: 2}
	assert.NotEqual(t, DirLeft, p.choose(g, nil))

	p.Dir = DirNone
	assert.Equal(t, DirLeft, p.choose(g, nil))
}

func TestPursuer_NoTurnUp(t *testing.T) {
	g := mustParse(t, crossroads)
	g.MarkNoTurnUp(maze.Region{Min: maze.Point{X: 2, Y: 2}, Max: maze.Point{X: 2, Y: 2}})

	tests := []struct {
		state PursuerState
		want  Direction
	}{
		{StateScatter, DirLeft},
		{StateChase, DirLeft},
		{StateLeavingHome, DirLeft},
		{StateEaten, DirUp},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			p := newTestPursuer(Chaser, maze.Point{X: 2, Y: 2}, DirLeft, tt.state)
			p.Target = maze.Point{X: 1, Y: 0}
			assert.Equal(t, tt.want, p.choose(g, nil))
		})
	}
}

func TestPursuer_FrightenedChoosesAmongLegal(t *testing.T) {
	g := mustParse(t, crossroads)
	rng := rand.New(rand.NewSource(7))
	seen := map[Direction]bool{}
	for i := 0; i < 200; i++ {
		p := newTestPursuer(Chaser, maze.Point{X: 2, Y: 2}, DirRight, StateFrightened)
		d := p.choose(g, rng)
		require.NotEqual(t, DirLeft, d, "reverse is never legal while moving")
		seen[d] = true
	}
	assert.Len(t, seen, 3)
}

func TestPursuer_TrappedReverses(t *testing.T) {
	g := mustParse(t, "#####\n#   #\n#####")
	p := newTestPursuer(Chaser, maze.Point{X: 3, Y: 1}, DirRight, StateChase)
	assert.Equal(t, DirLeft, p.choose(g, nil))

	boxed := mustParse(t, "###\n# #\n###")
	q := newTestPursuer(Chaser, maze.Point{X: 1, Y: 1}, DirNone, StateChase)
	assert.Equal(t, DirNone, q.choose(boxed, nil))
}

func TestPursuer_DoorPassage(t *testing.T) {
	g := mustParse(t, "#####\n#   #\n##-##\n##_##\n#####")

	tests := []struct {
		state PursuerState
		want  Direction
	}{
		{StateScatter, DirLeft},
		{StateEaten, DirDown},
		{StateLeavingHome, DirDown},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			p := newTestPursuer(Chaser, maze.Point{X: 2, Y: 1}, DirLeft, tt.state)
			p.Target = maze.Point{X: 2, Y: 9}
			assert.Equal(t, tt.want, p.choose(g, nil))
		})
	}
}

func TestChaseTargets(t *testing.T) {
	player := PlayerView{Tile: maze.Point{X: 10, Y: 10}}
	var roster Roster
	roster[Chaser] = PursuerView{ID: Chaser, Tile: maze.Point{X: 6, Y: 8}}

	tests := []struct {
		name   string
		id     Identity
		facing Direction
		want   maze.Point
	}{
		{"chaser targets the player", Chaser, DirLeft, maze.Point{X: 10, Y: 10}},
		{"ambusher four ahead", Ambusher, DirRight, maze.Point{X: 14, Y: 10}},
		{"ambusher facing up shifts left", Ambusher, DirUp, maze.Point{X: 6, Y: 6}},
		{"ambusher facing down", Ambusher, DirDown, maze.Point{X: 10, Y: 14}},
		// pivot (12,10), doubled away from chaser (6,8)
		{"flanker doubles chaser vector", Flanker, DirRight, maze.Point{X: 18, Y: 12}},
		// pivot (8,8) after the up shift
		{"flanker facing up shifts left", Flanker, DirUp, maze.Point{X: 10, Y: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := newTestPursuer(tt.id, maze.Point{X: 1, Y: 1}, DirLeft, StateChase)
			player.Facing = tt.facing
			assert.Equal(t, tt.want, chaseTargets[tt.id](self, player, roster))
		})
	}
}

func TestMoodyTarget(t *testing.T) {
	corner := maze.Point{X: 0, Y: 31}
	tests := []struct {
		name   string
		player maze.Point
		want   maze.Point
	}{
		{"nine tiles away chases", maze.Point{X: 9, Y: 0}, maze.Point{X: 9, Y: 0}},
		{"seven tiles away retreats", maze.Point{X: 7, Y: 0}, corner},
		{"exactly eight retreats", maze.Point{X: 8, Y: 0}, corner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := NewPursuer(Moody, PursuerSpawn{Start: maze.Point{X: 0, Y: 0}, Corner: corner}, ClassicLayout(), DefaultTuning())
			self.Spawn(DirLeft, StateChase)
			got := targetMoody(self, PlayerView{Tile: tt.player}, Roster{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPursuer_TargetByState(t *testing.T) {
	g := maze.Classic()
	l := ClassicLayout()
	corner := maze.Point{X: 0, Y: 0}

	tests := []struct {
		name  string
		state PursuerState
		tile  maze.Point
		want  maze.Point
	}{
		{"scatter goes to corner", StateScatter, maze.Point{X: 6, Y: 5}, corner},
		{"eaten outside heads for the door", StateEaten, maze.Point{X: 6, Y: 5}, l.HomeDoor},
		{"eaten at the door heads home", StateEaten, l.HomeDoor, l.HomeTile},
		{"eaten inside heads home", StateEaten, maze.Point{X: 13, Y: 13}, l.HomeTile},
		{"leaving inside heads for the exit", StateLeavingHome, maze.Point{X: 11, Y: 14}, l.HouseExit},
		{"leaving outside goes to corner", StateLeavingHome, maze.Point{X: 6, Y: 5}, corner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPursuer(Chaser, tt.tile, DirLeft, tt.state)
			assert.Equal(t, tt.want, p.target(g, PlayerView{}, Roster{}))
		})
	}
}

func TestPursuer_SpeedMultiplier(t *testing.T) {
	g := maze.Classic()
	tuning := DefaultTuning()

	tests := []struct {
		name  string
		state PursuerState
		tile  maze.Point
		want  float64
	}{
		{"normal", StateChase, maze.Point{X: 6, Y: 5}, 1},
		{"tunnel", StateChase, maze.Point{X: 2, Y: 14}, 0.5},
		{"frightened", StateFrightened, maze.Point{X: 6, Y: 5}, 0.5},
		{"eaten beats tunnel", StateEaten, maze.Point{X: 2, Y: 14}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPursuer(Chaser, tt.tile, DirLeft, tt.state)
			assert.Equal(t, tt.want, p.speedMultiplier(g, &tuning))
		})
	}
}

func TestPursuer_IdleDoesNotMove(t *testing.T) {
	g := mustParse(t, crossroads)
	tuning := DefaultTuning()
	p := newTestPursuer(Ambusher, maze.Point{X: 2, Y: 2}, DirUp, StateIdle)
	x, y := p.X, p.Y
	for i := 0; i < 30; i++ {
		p.Update(dt, g, &tuning, PlayerView{}, Roster{}, nil)
	}
	assert.Equal(t, x, p.X)
	assert.Equal(t, y, p.Y)
}
