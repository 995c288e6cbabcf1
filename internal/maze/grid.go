package maze

import "strings"

// Grid is the static tile layout of a maze. Dimensions never change after
// construction. Pickup state is tracked outside the grid.
type Grid struct {
	width    int
	height   int
	cells    []Kind
	noTurnUp map[Point]struct{}
}

// NewGrid creates a width x height grid filled with Empty tiles.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:    width,
		height:   height,
		cells:    make([]Kind, width*height),
		noTurnUp: make(map[Point]struct{}),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index returns the flat cell index of an in-bounds coordinate.
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// TileAt returns the kind at (x, y). Out-of-bounds coordinates resolve to
// Tunnel so wrap-around behaves like an in-bounds tunnel cell.
func (g *Grid) TileAt(x, y int) Kind {
	if !g.InBounds(x, y) {
		return Tunnel
	}
	return g.cells[g.Index(x, y)]
}

// SetTile overwrites a single cell. Out-of-bounds writes are ignored.
// Intended for debugging and test fixtures only.
func (g *Grid) SetTile(x, y int, k Kind) {
	if g.InBounds(x, y) {
		g.cells[g.Index(x, y)] = k
	}
}

// IsBlockingForPlayer reports whether the player cannot enter (x, y).
func (g *Grid) IsBlockingForPlayer(x, y int) bool {
	t := g.TileAt(x, y)
	return t == Wall || t == GhostDoor
}

// IsBlockingForPursuer reports whether a pursuer cannot enter (x, y).
// The ghost door is passable only when throughDoor is set, which callers
// derive from the pursuer's behavior state.
func (g *Grid) IsBlockingForPursuer(x, y int, throughDoor bool) bool {
	switch g.TileAt(x, y) {
	case Wall:
		return true
	case GhostDoor:
		return !throughDoor
	default:
		return false
	}
}

// IsHouse reports whether (x, y) is part of the pursuers' home enclosure.
func (g *Grid) IsHouse(x, y int) bool {
	t := g.TileAt(x, y)
	return t == GhostFloor || t == GhostDoor
}

// MarkNoTurnUp adds every tile of r to the no-turn-up overlay.
func (g *Grid) MarkNoTurnUp(r Region) {
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			g.noTurnUp[Point{X: x, Y: y}] = struct{}{}
		}
	}
}

// IsNoTurnUp reports membership in the no-turn-up overlay.
func (g *Grid) IsNoTurnUp(x, y int) bool {
	_, ok := g.noTurnUp[Point{X: x, Y: y}]
	return ok
}

// Count returns how many cells hold kind k.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, c := range g.cells {
		if c == k {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, including the no-turn-up overlay.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:    g.width,
		height:   g.height,
		cells:    make([]Kind, len(g.cells)),
		noTurnUp: make(map[Point]struct{}, len(g.noTurnUp)),
	}
	copy(c.cells, g.cells)
	for p := range g.noTurnUp {
		c.noTurnUp[p] = struct{}{}
	}
	return c
}

// String renders the grid back into its text description.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			b.WriteRune(g.cells[g.Index(x, y)].rune())
		}
		if y < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
