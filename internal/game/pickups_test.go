package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ugaemi/mazechase-server/internal/maze"
)

func TestPickups_ConsumeIsIdempotent(t *testing.T) {
	g := mustParse(t, "#.o #")
	p := NewPickups(g)
	assert.Equal(t, 2, p.Total())

	tests := []struct {
		name string
		at   maze.Point
		want Pickup
	}{
		{"dot", maze.Point{X: 1, Y: 0}, PickupDot},
		{"dot again", maze.Point{X: 1, Y: 0}, PickupNone},
		{"power pellet", maze.Point{X: 2, Y: 0}, PickupPowerPellet},
		{"power pellet again", maze.Point{X: 2, Y: 0}, PickupNone},
		{"empty cell", maze.Point{X: 3, Y: 0}, PickupNone},
		{"wall", maze.Point{X: 0, Y: 0}, PickupNone},
		{"out of bounds", maze.Point{X: -1, Y: 0}, PickupNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ConsumeAt(tt.at))
		})
	}

	assert.Equal(t, 2, p.Consumed())
	assert.Equal(t, 0, p.Remaining())
	assert.Equal(t, p.Total()-p.Consumed(), p.Remaining())
}

func TestPickups_Reset(t *testing.T) {
	g := maze.Classic()
	p := NewPickups(g)
	assert.Equal(t, 244, p.Total())

	p.ConsumeAt(maze.Point{X: 1, Y: 1})
	assert.False(t, p.Active(maze.Point{X: 1, Y: 1}))
	assert.Len(t, p.ActiveTiles(), 243)

	p.Reset(g)
	assert.True(t, p.Active(maze.Point{X: 1, Y: 1}))
	assert.Equal(t, 0, p.Consumed())
	assert.Equal(t, 244, p.Remaining())
}
