package game

import "github.com/ugaemi/mazechase-server/internal/maze"

// PlayerView is what pursuers may read about the player.
type PlayerView struct {
	Tile   maze.Point
	Facing Direction
	X, Y   float64
}

// PursuerView is what pursuers may read about each other.
type PursuerView struct {
	ID    Identity
	Tile  maze.Point
	State PursuerState
}

// Roster is a per-tick snapshot of every pursuer, indexed by Identity.
type Roster [PursuerCount]PursuerView

// TargetFunc computes a chase-phase target tile. It must only read its inputs.
type TargetFunc func(self *Pursuer, player PlayerView, roster Roster) maze.Point

// chaseTargets maps each identity to its chase strategy.
var chaseTargets = [PursuerCount]TargetFunc{
	Chaser:   targetPlayer,
	Ambusher: targetAhead(4),
	Flanker:  targetFlank(2),
	Moody:    targetMoody,
}

func targetPlayer(_ *Pursuer, player PlayerView, _ Roster) maze.Point {
	return player.Tile
}

// aheadOf projects n tiles along the player's facing. Facing up also shifts
// n tiles left, matching the arcade's overflow.
func aheadOf(player PlayerView, n int) maze.Point {
	dx, dy := player.Facing.Delta()
	pt := player.Tile.Add(dx*n, dy*n)
	if player.Facing == DirUp {
		pt.X -= n
	}
	return pt
}

func targetAhead(n int) TargetFunc {
	return func(_ *Pursuer, player PlayerView, _ Roster) maze.Point {
		return aheadOf(player, n)
	}
}

// targetFlank doubles the vector from the chaser to a pivot ahead of the player.
func targetFlank(n int) TargetFunc {
	return func(_ *Pursuer, player PlayerView, roster Roster) maze.Point {
		pivot := aheadOf(player, n)
		chaser := roster[Chaser].Tile
		return maze.Point{X: 2*pivot.X - chaser.X, Y: 2*pivot.Y - chaser.Y}
	}
}

// targetMoody chases from afar and retreats to its corner up close.
func targetMoody(self *Pursuer, player PlayerView, _ Roster) maze.Point {
	if TileDistance(self.Tile, player.Tile) > self.RetreatRadius {
		return player.Tile
	}
	return self.Corner
}
