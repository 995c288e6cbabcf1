package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/maze"
	"github.com/ugaemi/mazechase-server/internal/script"
)

// BuiltinScript selects the embedded release script.
const BuiltinScript = "builtin"

// Bundle is one consistent set of loaded assets. It is immutable once built.
type Bundle struct {
	Grid   *maze.Grid
	Tuning game.Tuning
	// Zones are the no-turn-up regions applied to Grid.
	Zones []maze.Region
	// Gate is nil when release follows the tuning thresholds.
	Gate *script.Gate
}

// NewSimulation starts a simulation over the bundle's assets.
func (b *Bundle) NewSimulation(opts ...game.Option) (*game.Simulation, error) {
	if b.Gate != nil {
		opts = append([]game.Option{game.WithReleaseGate(b.Gate.Clone())}, opts...)
	}
	return game.NewSimulation(b.Grid, b.Tuning, opts...)
}

// Library owns the current asset bundle and swaps it on reload. Running
// simulations keep the bundle they were built from.
type Library struct {
	cfg    *Config
	assets *Assets

	mu      sync.RWMutex
	current *Bundle

	// OnReload is called after a successful reload.
	OnReload func(b *Bundle)
}

func NewLibrary(cfg *Config) (*Library, error) {
	l := &Library{cfg: cfg, assets: NewAssets(cfg.AssetsDir)}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Current returns the active bundle.
func (l *Library) Current() *Bundle {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Reload rebuilds the bundle from disk. On error the previous bundle stays.
func (l *Library) Reload() error {
	b, err := LoadBundle(l.cfg, l.assets)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.current = b
	l.mu.Unlock()

	if l.OnReload != nil {
		l.OnReload(b)
	}
	return nil
}

// LoadBundle reads the tuning, maze, and release script named by cfg.
func LoadBundle(cfg *Config, assets *Assets) (*Bundle, error) {
	t, zones, err := LoadTuning(assets, cfg.TuningFile)
	if err != nil {
		return nil, err
	}

	text := maze.ClassicText()
	if cfg.MazeFile != "" {
		data, err := assets.Load(cfg.MazeFile)
		if err != nil {
			return nil, fmt.Errorf("config: load %s: %w", cfg.MazeFile, err)
		}
		text = string(data)
	}
	grid, err := maze.ParseWithZones(text, zones)
	if err != nil {
		return nil, fmt.Errorf("config: maze: %w", err)
	}

	b := &Bundle{Grid: grid, Tuning: t, Zones: zones}
	fallback := game.ThresholdGate(t.ReleaseThresholds)
	switch cfg.ReleaseScript {
	case "":
	case BuiltinScript:
		b.Gate, err = script.Default(fallback)
	default:
		b.Gate, err = script.Load(assets.DiskPath(cfg.ReleaseScript), fallback)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// Catch layout mistakes at load time rather than when a session starts.
	if _, err := b.NewSimulation(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return b, nil
}

// Watch reloads the bundle whenever a file in the assets directory changes,
// until ctx is done.
func (l *Library) Watch(ctx context.Context) error {
	w, err := NewWatcher(l.assets.Dir())
	if err != nil {
		return fmt.Errorf("config: watch %s: %w", l.assets.Dir(), err)
	}
	defer w.Close()

	slog.Info("watching assets", "dir", l.assets.Dir())
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			if err := l.Reload(); err != nil {
				slog.Warn("asset reload failed", "file", filepath.Base(name), "error", err)
				continue
			}
			slog.Info("assets reloaded", "file", filepath.Base(name))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("asset watcher error", "error", err)
		}
	}
}
