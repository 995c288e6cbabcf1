package game

import "github.com/ugaemi/mazechase-server/internal/maze"

// Player is the input-driven agent.
type Player struct {
	Agent

	// Facing is the last non-none direction; targeting reads it.
	Facing Direction
	// MouthAngle is cosmetic and has no effect on the simulation.
	MouthAngle float64
	Moving     bool

	mouthClosing bool
	turnWindow   float64
	pickupRadius float64
}

// NewPlayer creates a player centred on start, heading dir.
func NewPlayer(start maze.Point, dir Direction, speed float64, t Tuning) *Player {
	p := &Player{
		turnWindow:   t.TurnWindow,
		pickupRadius: t.PickupRadius,
	}
	p.Spawn(start, dir, speed)
	return p
}

// Spawn resets position, direction and animation.
func (p *Player) Spawn(start maze.Point, dir Direction, speed float64) {
	p.PlaceAt(start)
	p.Dir = dir
	p.NextDir = dir
	p.Facing = dir
	p.Speed = speed
	p.MouthAngle = 0
	p.mouthClosing = false
	p.Moving = false
}

// Update advances the player by one tick of length dt and returns the
// pickup consumed on the way, if any.
func (p *Player) Update(dt float64, intent Direction, g *maze.Grid, pickups *Pickups) Pickup {
	if intent != DirNone {
		p.NextDir = intent
	}

	// Reversal is legal anywhere, without waiting for a tile centre.
	if p.Dir != DirNone && p.NextDir == p.Dir.Opposite() {
		p.Dir = p.NextDir
	}

	step := p.Speed * dt
	if arr := p.arrive(step, p.turnWindow); arr.reached {
		p.Moving = p.turnOrContinue(arr, step, g)
	} else {
		p.advance(step)
		p.Moving = p.Dir != DirNone
	}
	if p.Dir != DirNone {
		p.Facing = p.Dir
	}

	p.syncTile(g)
	p.animate(dt)

	if p.DistanceToCenter() <= p.pickupRadius {
		return pickups.ConsumeAt(p.Tile)
	}
	return PickupNone
}

// turnOrContinue runs at a tile centre. It commits the buffered turn when
// the destination is open, carrying the leftover travel onto the new axis;
// otherwise it keeps going straight, or halts on the centre at a wall.
func (p *Player) turnOrContinue(arr arrival, step float64, g *maze.Grid) bool {
	if p.NextDir != p.Dir && p.NextDir != DirNone {
		dx, dy := p.NextDir.Delta()
		if !g.IsBlockingForPlayer(p.Tile.X+dx, p.Tile.Y+dy) {
			p.snap(arr)
			p.Dir = p.NextDir
			p.advance(arr.remaining)
			return true
		}
	}

	if p.Dir == DirNone {
		return false
	}
	dx, dy := p.Dir.Delta()
	if g.IsBlockingForPlayer(p.Tile.X+dx, p.Tile.Y+dy) {
		p.snap(arr)
		return false
	}
	p.advance(step)
	return true
}

func (p *Player) animate(dt float64) {
	if !p.Moving {
		p.MouthAngle = mouthStillPose
		return
	}
	if p.mouthClosing {
		p.MouthAngle -= mouthSpeed * dt
	} else {
		p.MouthAngle += mouthSpeed * dt
	}
	switch {
	case p.MouthAngle >= mouthOpenMax:
		p.MouthAngle = mouthOpenMax
		p.mouthClosing = true
	case p.MouthAngle <= 0:
		p.MouthAngle = 0
		p.mouthClosing = false
	}
}

// View is the read-only snapshot pursuers target against.
func (p *Player) View() PlayerView {
	return PlayerView{Tile: p.Tile, Facing: p.Facing, X: p.X, Y: p.Y}
}
