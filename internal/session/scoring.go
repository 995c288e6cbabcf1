package session

import "github.com/ugaemi/mazechase-server/internal/game"

const (
	DotPoints         = 10
	PowerPelletPoints = 50
	// CapturePoints doubles for each pursuer captured on one power pellet.
	CapturePoints    = 200
	MaxCapturePoints = 1600
	ExtraLifeScore   = 10000
)

// Scorer turns simulation events into points.
type Scorer struct {
	Score int
	combo int
	bonus bool
}

// Apply scores one event. It reports true when the score first crosses
// ExtraLifeScore.
func (s *Scorer) Apply(e game.Event) bool {
	switch e.Kind {
	case game.EventDotConsumed:
		s.Score += DotPoints
	case game.EventPowerPelletConsumed:
		s.Score += PowerPelletPoints
		s.combo = 0
	case game.EventPursuerCaptured:
		s.Score += min(CapturePoints<<s.combo, MaxCapturePoints)
		s.combo++
	default:
		return false
	}

	if !s.bonus && s.Score >= ExtraLifeScore {
		s.bonus = true
		return true
	}
	return false
}

// Reset clears the score for a new game.
func (s *Scorer) Reset() {
	*s = Scorer{}
}
