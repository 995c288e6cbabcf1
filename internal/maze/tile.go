package maze

// Kind classifies a single maze cell.
type Kind int

const (
	Empty Kind = iota
	Dot
	PowerPellet
	Wall
	GhostDoor
	GhostFloor
	Tunnel
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Dot:
		return "dot"
	case PowerPellet:
		return "power_pellet"
	case Wall:
		return "wall"
	case GhostDoor:
		return "ghost_door"
	case GhostFloor:
		return "ghost_floor"
	case Tunnel:
		return "tunnel"
	default:
		return "unknown"
	}
}

// IsPickup reports whether the kind starts out holding a consumable.
func (k Kind) IsPickup() bool {
	return k == Dot || k == PowerPellet
}

// kindFromRune maps a maze description character to a tile kind.
// Unknown characters resolve to Empty.
func kindFromRune(r rune) (Kind, bool) {
	switch r {
	case '#':
		return Wall, true
	case '.':
		return Dot, true
	case 'o':
		return PowerPellet, true
	case 'X', ' ':
		return Empty, true
	case '-':
		return GhostDoor, true
	case '_':
		return GhostFloor, true
	case 'T':
		return Tunnel, true
	default:
		return Empty, false
	}
}

func (k Kind) rune() rune {
	switch k {
	case Wall:
		return '#'
	case Dot:
		return '.'
	case PowerPellet:
		return 'o'
	case GhostDoor:
		return '-'
	case GhostFloor:
		return '_'
	case Tunnel:
		return 'T'
	default:
		return ' '
	}
}

// Point is a tile coordinate.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Region is an inclusive rectangle of tiles.
type Region struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}
