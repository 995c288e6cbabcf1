// Package script runs tengo release rules for the pursuer house.
package script

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/ugaemi/mazechase-server/internal/game"
)

//go:embed release.tengo
var defaultRelease []byte

// The rule script must define release(pursuer, consumed, elapsed, level).
const dispatch = `
__result := release(__pursuer, __consumed, __elapsed, __level)
`

// Gate is a game.ReleaseGate backed by a compiled tengo script. When the
// script fails at run time the fallback gate decides instead.
type Gate struct {
	mu       sync.Mutex
	name     string
	compiled *tengo.Compiled
	fallback game.ReleaseGate
}

// NewGate compiles src and dry-runs it once so type errors surface early.
func NewGate(name string, src []byte, fallback game.ReleaseGate) (*Gate, error) {
	full := make([]byte, 0, len(src)+len(dispatch)+1)
	full = append(full, src...)
	full = append(full, '\n')
	full = append(full, dispatch...)

	s := tengo.NewScript(full)
	_ = s.Add("__pursuer", "")
	_ = s.Add("__consumed", 0)
	_ = s.Add("__elapsed", 0.0)
	_ = s.Add("__level", 1)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	g := &Gate{name: name, compiled: compiled, fallback: fallback}
	if _, err := g.eval(game.Chaser, game.ReleaseStatus{Level: 1}); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}
	return g, nil
}

// Default compiles the built-in release rule.
func Default(fallback game.ReleaseGate) (*Gate, error) {
	return NewGate("release.tengo", defaultRelease, fallback)
}

// Load compiles the rule script at path.
func Load(path string, fallback game.ReleaseGate) (*Gate, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return NewGate(filepath.Base(path), src, fallback)
}

// Clone returns an independent gate sharing the compiled program.
func (g *Gate) Clone() *Gate {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &Gate{name: g.name, compiled: g.compiled.Clone(), fallback: g.fallback}
}

// Name identifies the script in logs.
func (g *Gate) Name() string {
	return g.name
}

// Release implements game.ReleaseGate.
func (g *Gate) Release(id game.Identity, status game.ReleaseStatus) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	ok, err := g.eval(id, status)
	if err != nil {
		slog.Warn("release script failed", "script", g.name, "pursuer", id.String(), "error", err)
		if g.fallback == nil {
			return true
		}
		return g.fallback.Release(id, status)
	}
	return ok
}

// eval runs the script once. The tengo VM panics on some runtime faults,
// such as integer division by zero; those come back as errors.
func (g *Gate) eval(id game.Identity, status game.ReleaseStatus) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("script panic: %v", r)
		}
	}()

	if err := g.compiled.Set("__pursuer", id.String()); err != nil {
		return false, err
	}
	if err := g.compiled.Set("__consumed", status.Consumed); err != nil {
		return false, err
	}
	if err := g.compiled.Set("__elapsed", status.Elapsed); err != nil {
		return false, err
	}
	if err := g.compiled.Set("__level", status.Level); err != nil {
		return false, err
	}
	if err := g.compiled.Run(); err != nil {
		return false, err
	}

	res := g.compiled.Get("__result")
	if res.ValueType() != "bool" {
		return false, fmt.Errorf("release returned %s, want bool", res.ValueType())
	}
	return res.Bool(), nil
}
