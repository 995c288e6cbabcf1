package game

import (
	"math"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// TileDistance is the Euclidean distance between two tile coordinates.
func TileDistance(a, b maze.Point) float64 {
	return Distance(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
}

// InCaptureRange checks if a pursuer touches the player.
func InCaptureRange(player *Player, pursuer *Pursuer, radius float64) bool {
	return Distance(player.X, player.Y, pursuer.X, pursuer.Y) < radius
}

// ProcessCaptures resolves contact between the player and every pursuer.
// A frightened pursuer in range becomes Eaten; a scatter or chase pursuer
// in range catches the player. Every pair is checked, so one tick may
// report several captures.
func ProcessCaptures(player *Player, pursuers []*Pursuer, radius float64) []Event {
	var events []Event
	for _, p := range pursuers {
		if !InCaptureRange(player, p, radius) {
			continue
		}
		switch {
		case p.State == StateFrightened:
			p.SetState(StateEaten)
			events = append(events, Event{Kind: EventPursuerCaptured, Pursuer: p.ID, X: p.X, Y: p.Y})
		case p.State.followsWave():
			events = append(events, Event{Kind: EventPlayerCaught, Pursuer: p.ID, X: player.X, Y: player.Y})
		}
	}
	return events
}
