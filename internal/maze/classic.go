package maze

import (
	_ "embed"
)

//go:embed classic.txt
var classicText string

// ClassicNoTurnUp lists the T-junctions above the house and above the
// player's start where pursuers may not choose to go up.
var ClassicNoTurnUp = []Region{
	{Min: Point{X: 12, Y: 11}, Max: Point{X: 15, Y: 11}},
	{Min: Point{X: 12, Y: 23}, Max: Point{X: 15, Y: 23}},
}

// ClassicText returns the embedded 28x31 arcade layout.
func ClassicText() string {
	return classicText
}

// Classic returns a fresh copy of the arcade layout with its no-turn-up zones.
func Classic() *Grid {
	g, err := ParseWithZones(classicText, ClassicNoTurnUp)
	if err != nil {
		panic("maze: embedded classic layout is invalid: " + err.Error())
	}
	return g
}
