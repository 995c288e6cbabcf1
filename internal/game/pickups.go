package game

import "github.com/ugaemi/mazechase-server/internal/maze"

// Pickup is the result of a consumption attempt.
type Pickup int

const (
	PickupNone Pickup = iota
	PickupDot
	PickupPowerPellet
)

func (p Pickup) String() string {
	switch p {
	case PickupDot:
		return "dot"
	case PickupPowerPellet:
		return "power_pellet"
	default:
		return "none"
	}
}

// Pickups tracks which dot and power-pellet cells are still uneaten. It is
// the single source of truth for pickup presence; the grid only records
// what each cell started with.
type Pickups struct {
	grid     *maze.Grid
	active   []bool
	total    int
	consumed int
}

// NewPickups builds pickup state for every Dot and PowerPellet cell of g.
func NewPickups(g *maze.Grid) *Pickups {
	p := &Pickups{}
	p.Reset(g)
	return p
}

// Reset rebuilds the active set from g, which may be a different grid.
func (p *Pickups) Reset(g *maze.Grid) {
	p.grid = g
	p.active = make([]bool, g.Width()*g.Height())
	p.total = 0
	p.consumed = 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.TileAt(x, y).IsPickup() {
				p.active[g.Index(x, y)] = true
				p.total++
			}
		}
	}
}

// ConsumeAt deactivates the pickup at pt and reports what was eaten.
// Cells without an active pickup, including out-of-bounds ones, yield PickupNone.
func (p *Pickups) ConsumeAt(pt maze.Point) Pickup {
	if !p.grid.InBounds(pt.X, pt.Y) {
		return PickupNone
	}
	i := p.grid.Index(pt.X, pt.Y)
	if !p.active[i] {
		return PickupNone
	}
	p.active[i] = false
	p.consumed++
	if p.grid.TileAt(pt.X, pt.Y) == maze.PowerPellet {
		return PickupPowerPellet
	}
	return PickupDot
}

// Active reports whether pt still holds a pickup.
func (p *Pickups) Active(pt maze.Point) bool {
	if !p.grid.InBounds(pt.X, pt.Y) {
		return false
	}
	return p.active[p.grid.Index(pt.X, pt.Y)]
}

func (p *Pickups) Total() int { return p.total }

func (p *Pickups) Consumed() int { return p.consumed }

// Remaining is Total minus Consumed.
func (p *Pickups) Remaining() int { return p.total - p.consumed }

// ActiveTiles lists the remaining pickups in row-major order.
func (p *Pickups) ActiveTiles() []maze.Point {
	out := make([]maze.Point, 0, p.Remaining())
	w := p.grid.Width()
	for i, on := range p.active {
		if on {
			out = append(out, maze.Point{X: i % w, Y: i / w})
		}
	}
	return out
}
