package game

import (
	"math"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

// Agent is the movement state shared by the player and the pursuers.
// Tile is always floor(position / TileSize); it is recomputed after every
// move and never updated on its own.
type Agent struct {
	X, Y    float64
	Tile    maze.Point
	Dir     Direction
	NextDir Direction
	// Speed is in position units per second.
	Speed float64
}

// TileCenter returns the position of the centre of tile t.
func TileCenter(t maze.Point) (x, y float64) {
	return float64(t.X)*TileSize + TileSize/2, float64(t.Y)*TileSize + TileSize/2
}

// TileOf returns the tile containing position (x, y).
func TileOf(x, y float64) maze.Point {
	return maze.Point{X: int(math.Floor(x / TileSize)), Y: int(math.Floor(y / TileSize))}
}

// PlaceAt puts the agent on the centre of t.
func (a *Agent) PlaceAt(t maze.Point) {
	a.X, a.Y = TileCenter(t)
	a.Tile = t
}

// Reverse flips the current direction in place.
func (a *Agent) Reverse() {
	a.Dir = a.Dir.Opposite()
}

// DistanceToCenter is the Euclidean distance to the current tile's centre.
func (a *Agent) DistanceToCenter() float64 {
	cx, cy := TileCenter(a.Tile)
	return math.Hypot(a.X-cx, a.Y-cy)
}

// arrival describes how this tick's motion relates to the current tile centre.
type arrival struct {
	cx, cy float64
	// reached is set when the motion this tick reaches or crosses the centre.
	reached bool
	// remaining is the travel left over after stopping on the centre.
	remaining float64
}

// arrive checks whether moving step units along Dir reaches the centre of
// the current tile. The check only applies inside the turn window, and it
// compares the signed offset along the travel axis against step. A
// stationary agent counts as arriving when it already sits on the centre.
func (a *Agent) arrive(step, window float64) arrival {
	cx, cy := TileCenter(a.Tile)
	dx, dy := a.X-cx, a.Y-cy
	arr := arrival{cx: cx, cy: cy}
	dist := math.Hypot(dx, dy)
	if dist > window {
		return arr
	}
	if a.Dir == DirNone {
		arr.reached = dist < centerEpsilon
		return arr
	}
	ux, uy := a.Dir.Delta()
	along := dx*float64(ux) + dy*float64(uy)
	if along <= 0 && along+step >= 0 {
		arr.reached = true
		arr.remaining = along + step
	}
	return arr
}

// snap moves the agent exactly onto the centre recorded in arr.
func (a *Agent) snap(arr arrival) {
	a.X, a.Y = arr.cx, arr.cy
}

// advance moves the agent dist units along Dir.
func (a *Agent) advance(dist float64) {
	ux, uy := a.Dir.Delta()
	a.X += float64(ux) * dist
	a.Y += float64(uy) * dist
}

// syncTile recomputes Tile from the position and applies the horizontal
// tunnel wrap. Row and direction are preserved across the wrap.
func (a *Agent) syncTile(g *maze.Grid) {
	a.Tile = TileOf(a.X, a.Y)
	switch {
	case a.Tile.X < 0:
		a.X = float64(g.Width())*TileSize - 1
		a.Tile.X = g.Width() - 1
	case a.Tile.X >= g.Width():
		a.X = 0
		a.Tile.X = 0
	}
}
