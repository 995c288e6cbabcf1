package game

import (
	"math"
	"math/rand"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

// house holds the checkpoints pursuers steer by while entering or leaving.
type house struct {
	door maze.Point
	home maze.Point
	exit maze.Point
}

// Pursuer is one of the four AI agents. All identities share this engine
// and differ only in their chase TargetFunc.
type Pursuer struct {
	Agent

	ID     Identity
	State  PursuerState
	Corner maze.Point
	Start  maze.Point
	// EyeDir is the last non-none heading, kept for rendering.
	EyeDir Direction
	Target maze.Point
	// RetreatRadius is the tile distance inside which the moody strategy
	// falls back to its corner.
	RetreatRadius float64

	house      house
	turnWindow float64

	// decided guards against re-running the turn decision on the tile
	// already decided; a forced reversal clears it.
	decided     bool
	decidedTile maze.Point
}

// NewPursuer creates a pursuer from its spawn description.
func NewPursuer(id Identity, spawn PursuerSpawn, l Layout, t Tuning) *Pursuer {
	p := &Pursuer{
		ID:            id,
		Corner:        spawn.Corner,
		Start:         spawn.Start,
		RetreatRadius: t.MoodyRadius,
		house:         house{door: l.HomeDoor, home: l.HomeTile, exit: l.HouseExit},
		turnWindow:    t.TurnWindow,
	}
	p.Speed = t.BasePlayerSpeed * t.PursuerSpeedRatio
	return p
}

// Spawn puts the pursuer back on its start tile in state s.
func (p *Pursuer) Spawn(dir Direction, s PursuerState) {
	p.PlaceAt(p.Start)
	p.Dir = dir
	p.NextDir = DirNone
	p.EyeDir = dir
	p.State = s
	p.Target = p.Corner
	p.decided = false
}

// Reverse flips direction and re-arms the turn decision.
func (p *Pursuer) Reverse() {
	p.Agent.Reverse()
	if p.Dir != DirNone {
		p.EyeDir = p.Dir
	}
	p.decided = false
}

// SetState changes state without moving.
func (p *Pursuer) SetState(s PursuerState) {
	p.State = s
}

// View is the read-only projection other pursuers target against.
func (p *Pursuer) View() PursuerView {
	return PursuerView{ID: p.ID, Tile: p.Tile, State: p.State}
}

// speedMultiplier applies state and tunnel penalties.
func (p *Pursuer) speedMultiplier(g *maze.Grid, t *Tuning) float64 {
	switch {
	case p.State == StateEaten:
		return t.EatenSpeedMultiplier
	case p.State == StateFrightened:
		return t.FrightenedSpeedMultiplier
	case g.TileAt(p.Tile.X, p.Tile.Y) == maze.Tunnel:
		return t.TunnelSpeedMultiplier
	default:
		return 1
	}
}

// Update advances the pursuer by one tick. Idle pursuers do not move.
func (p *Pursuer) Update(dt float64, g *maze.Grid, t *Tuning, player PlayerView, roster Roster, rng *rand.Rand) {
	if p.State == StateIdle {
		return
	}

	step := p.Speed * p.speedMultiplier(g, t) * dt
	arr := p.arrive(step, p.turnWindow)
	fresh := !p.decided || p.decidedTile != p.Tile || p.Dir == DirNone
	if arr.reached && fresh {
		p.snap(arr)
		p.decided = true
		p.decidedTile = p.Tile
		p.checkpoint(g)
		p.Target = p.target(g, player, roster)
		p.Dir = p.choose(g, rng)
		if p.Dir != DirNone {
			p.EyeDir = p.Dir
		}
		p.advance(arr.remaining)
	} else {
		p.advance(step)
	}
	p.syncTile(g)
}

// checkpoint applies the house transitions that happen on arrival at a
// tile centre.
func (p *Pursuer) checkpoint(g *maze.Grid) {
	switch p.State {
	case StateEaten:
		if p.Tile == p.house.home {
			p.State = StateLeavingHome
		}
	case StateLeavingHome:
		if p.Tile == p.house.exit || !g.IsHouse(p.Tile.X, p.Tile.Y) {
			p.State = StateJustLeftHome
		}
	}
}

func (p *Pursuer) target(g *maze.Grid, player PlayerView, roster Roster) maze.Point {
	inHouse := g.IsHouse(p.Tile.X, p.Tile.Y)
	switch p.State {
	case StateChase:
		return chaseTargets[p.ID](p, player, roster)
	case StateEaten:
		if inHouse || p.Tile == p.house.door {
			return p.house.home
		}
		return p.house.door
	case StateLeavingHome:
		if inHouse {
			return p.house.exit
		}
		return p.Corner
	default:
		return p.Corner
	}
}

// choose picks the next direction at a tile centre. Candidates are tried
// Up, Left, Down, Right so the first minimum wins ties.
func (p *Pursuer) choose(g *maze.Grid, rng *rand.Rand) Direction {
	stationary := p.Dir == DirNone
	reverse := p.Dir.Opposite()
	throughDoor := p.State.passesDoor()

	var legal [4]Direction
	n := 0
	best, bestDist := DirNone, math.Inf(1)
	for _, d := range decisionOrder {
		if !stationary && d == reverse {
			continue
		}
		if d == DirUp && !p.State.ignoresNoTurnUp() && g.IsNoTurnUp(p.Tile.X, p.Tile.Y) {
			continue
		}
		dx, dy := d.Delta()
		dest := p.Tile.Add(dx, dy)
		if g.IsBlockingForPursuer(dest.X, dest.Y, throughDoor) {
			continue
		}
		legal[n] = d
		n++
		if dist := TileDistance(dest, p.Target); dist < bestDist {
			best, bestDist = d, dist
		}
	}

	switch {
	case n == 0 && stationary:
		return DirNone
	case n == 0:
		// Trapped: turn around unless that is walled off too.
		dx, dy := reverse.Delta()
		if g.IsBlockingForPursuer(p.Tile.X+dx, p.Tile.Y+dy, throughDoor) {
			return DirNone
		}
		return reverse
	case p.State == StateFrightened:
		return legal[rng.Intn(n)]
	default:
		return best
	}
}
