// Package session runs one player's game over a websocket connection.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/store"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

const submitTimeout = 5 * time.Second

// Sink receives the messages a session produces. *ws.Client implements it.
type Sink interface {
	SendMessage(msg ws.Message)
}

// Status is the lifecycle state of a session.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Options control lives and how often state is pushed to the client.
type Options struct {
	Lives         int
	BroadcastRate int
}

// Session owns a Simulation and is the only goroutine that steps it.
type Session struct {
	ID       string
	Nickname string

	sim    *game.Simulation
	clock  *game.Clock
	scorer Scorer
	lives  int
	best   int
	// cleared counts finished mazes.
	cleared int

	sink  Sink
	store store.ScoreStore

	tickInterval   time.Duration
	broadcastEvery int
	sinceBroadcast int

	intent game.Direction
	status Status

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once

	// OnEnd is called once the session stops for any reason.
	OnEnd func(s *Session)

	mu sync.Mutex
}

// New creates a session around sim. best seeds the high score shown to the player.
func New(nickname string, sim *game.Simulation, sink Sink, scores store.ScoreStore, best int, opts Options) *Session {
	t := sim.Tuning()
	lives := opts.Lives
	if lives <= 0 {
		lives = 3
	}
	every := 1
	if opts.BroadcastRate > 0 && opts.BroadcastRate < t.TickRate {
		every = t.TickRate / opts.BroadcastRate
	}

	return &Session{
		ID:             uuid.New().String(),
		Nickname:       nickname,
		sim:            sim,
		clock:          game.NewClock(t),
		lives:          lives,
		best:           best,
		sink:           sink,
		store:          scores,
		tickInterval:   time.Duration(float64(time.Second) * t.Dt()),
		broadcastEvery: every,
		intent:         game.DirNone,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

type sessionInfoMessage struct {
	SessionID string `json:"session_id"`
	Lives     int    `json:"lives"`
	Level     int    `json:"level"`
	HighScore int    `json:"high_score"`
}

type gameStateMessage struct {
	Score     int           `json:"score"`
	Lives     int           `json:"lives"`
	HighScore int           `json:"high_score"`
	Status    string        `json:"status"`
	State     game.Snapshot `json:"state"`
}

type gameEventMessage struct {
	Tick   uint64       `json:"tick"`
	Events []game.Event `json:"events"`
}

type gameOverMessage struct {
	Score   int `json:"score"`
	Level   int `json:"level"`
	Cleared int `json:"cleared"`
}

// Start sends the session info and runs the loop in a new goroutine.
func (s *Session) Start() {
	s.mu.Lock()
	info := sessionInfoMessage{SessionID: s.ID, Lives: s.lives, Level: s.sim.Level(), HighScore: s.best}
	s.mu.Unlock()

	msg, _ := ws.NewMessage(ws.TypeSessionInfo, info)
	s.sink.SendMessage(msg)
	s.broadcastState()

	slog.Info("session started", "session", s.ID, "nickname", s.Nickname)
	go s.run()
}

// SetIntent stores the direction applied on the following ticks.
func (s *Session) SetIntent(d game.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intent = d
}

// Pause freezes the simulation until Resume.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRunning {
		s.status = StatusPaused
	}
}

// Resume continues a paused session. Time spent paused is discarded.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusPaused {
		s.status = StatusRunning
		s.clock.Reset()
	}
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scorer.Score
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lives
}

// Snapshot returns the simulation state.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Snapshot()
}

// Stop ends the session without recording a score. Done is closed once the
// loop has exited.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.doneCh
}

func (s *Session) run() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	defer func() {
		if s.OnEnd != nil {
			s.OnEnd(s)
		}
		close(s.doneCh)
	}()

	last := time.Now()
	for {
		select {
		case <-s.stopCh:
			slog.Info("session stopped", "session", s.ID)
			return
		case now := <-ticker.C:
			frame := now.Sub(last).Seconds()
			last = now
			if s.Advance(frame) {
				s.finish()
				return
			}
		}
	}
}

// Advance runs the fixed steps due for a frame of the given length and
// pushes events and state to the sink. It reports whether the game is over.
func (s *Session) Advance(frame float64) bool {
	s.mu.Lock()
	if s.status != StatusRunning {
		over := s.status == StatusOver
		s.mu.Unlock()
		return over
	}

	var events []game.Event
	steps := s.clock.Advance(frame)
	for i := 0; i < steps; i++ {
		events = append(events, s.step()...)
		if s.status == StatusOver {
			break
		}
	}

	tick := s.sim.Tick()
	s.sinceBroadcast += steps
	broadcast := s.sinceBroadcast >= s.broadcastEvery || s.status == StatusOver
	if broadcast {
		s.sinceBroadcast = 0
	}
	over := s.status == StatusOver
	s.mu.Unlock()

	if len(events) > 0 {
		msg, _ := ws.NewMessage(ws.TypeGameEvent, gameEventMessage{Tick: tick, Events: events})
		s.sink.SendMessage(msg)
	}
	if broadcast {
		s.broadcastState()
	}
	return over
}

// step advances the simulation once. Caller must hold s.mu.
func (s *Session) step() []game.Event {
	events := s.sim.Step(s.intent)

	caught, cleared := false, false
	for _, e := range events {
		if s.scorer.Apply(e) {
			s.lives++
			slog.Info("extra life", "session", s.ID, "score", s.scorer.Score)
		}
		switch e.Kind {
		case game.EventPlayerCaught:
			caught = true
		case game.EventMazeCleared:
			cleared = true
		}
	}
	s.best = max(s.best, s.scorer.Score)

	if caught {
		s.lives--
		if s.lives <= 0 {
			s.status = StatusOver
			return events
		}
	}

	// NextLevel respawns every agent too.
	switch {
	case cleared:
		s.cleared++
		s.sim.NextLevel()
		slog.Info("maze cleared", "session", s.ID, "level", s.sim.Level())
	case caught:
		s.sim.Respawn()
	}
	return events
}

func (s *Session) broadcastState() {
	s.mu.Lock()
	state := gameStateMessage{
		Score:     s.scorer.Score,
		Lives:     s.lives,
		HighScore: s.best,
		Status:    s.status.String(),
		State:     s.sim.Snapshot(),
	}
	s.mu.Unlock()

	msg, _ := ws.NewMessage(ws.TypeGameState, state)
	s.sink.SendMessage(msg)
}

// finish records the final score and tells the client the game is over.
func (s *Session) finish() {
	s.mu.Lock()
	result := gameOverMessage{Score: s.scorer.Score, Level: s.sim.Level(), Cleared: s.cleared}
	s.mu.Unlock()

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		err := s.store.Submit(ctx, store.NewEntry(s.Nickname, result.Score, result.Level))
		cancel()
		if err != nil {
			slog.Error("failed to submit score", "session", s.ID, "error", err)
		}
	}

	msg, _ := ws.NewMessage(ws.TypeGameOver, result)
	s.sink.SendMessage(msg)

	slog.Info("game over", "session", s.ID, "score", result.Score, "level", result.Level)
}
