package maze

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyMaze   = errors.New("maze: empty description")
	ErrRaggedRows  = errors.New("maze: rows have different widths")
	ErrOutOfBounds = errors.New("maze: coordinate out of bounds")
)

// Parse builds a Grid from a text description, one row per line.
//
// Parsing is lenient about content and strict about shape: unknown
// characters become Empty, but every row must have the same width.
// Blank lines before the first and after the last row are ignored.
func Parse(text string) (*Grid, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	lines = lines[start:end]
	if len(lines) == 0 {
		return nil, ErrEmptyMaze
	}

	width := utf8.RuneCountInString(lines[0])
	if width == 0 {
		return nil, ErrEmptyMaze
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrRaggedRows, i, n, width)
		}
	}

	g := NewGrid(width, len(lines))
	for y, line := range lines {
		x := 0
		for _, r := range line {
			k, _ := kindFromRune(r)
			g.cells[g.Index(x, y)] = k
			x++
		}
	}
	return g, nil
}

// ParseWithZones parses text and applies the given no-turn-up regions.
// Regions must lie inside the grid.
func ParseWithZones(text string, zones []Region) (*Grid, error) {
	g, err := Parse(text)
	if err != nil {
		return nil, err
	}
	for _, z := range zones {
		if !g.InBounds(z.Min.X, z.Min.Y) || !g.InBounds(z.Max.X, z.Max.Y) {
			return nil, fmt.Errorf("%w: no-turn-up region %v..%v", ErrOutOfBounds, z.Min, z.Max)
		}
		g.MarkNoTurnUp(z)
	}
	return g, nil
}
