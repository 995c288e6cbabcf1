package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_Advance(t *testing.T) {
	tests := []struct {
		name   string
		frames []float64
		want   int
	}{
		{"one step per frame", []float64{dt}, 1},
		{"half frames accumulate", []float64{dt / 2, dt / 2}, 1},
		{"short frame runs nothing", []float64{dt / 3}, 0},
		{"long frame is clamped", []float64{1.0}, 15},
		{"negative frame is ignored", []float64{-1}, 0},
		{"one second of frames", repeat(dt, 60), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(DefaultTuning())
			total := 0
			for _, f := range tt.frames {
				total += c.Advance(f)
			}
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestClock_AlphaAndReset(t *testing.T) {
	c := NewClock(DefaultTuning())
	assert.Equal(t, 0, c.Advance(dt/4))
	assert.InDelta(t, 0.25, c.Alpha(), 1e-9)

	c.Reset()
	assert.Equal(t, 0.0, c.Alpha())
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
