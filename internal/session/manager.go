package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/store"
)

var ErrAlreadyPlaying = errors.New("session: client already has a session")

// SimFactory builds the simulation for a new session.
type SimFactory func() (*game.Simulation, error)

// Manager manages all active sessions.
type Manager struct {
	newSim SimFactory
	store  store.ScoreStore
	opts   Options

	sessions map[string]*Session // session ID -> session
	byClient map[string]string   // client ID -> session ID
	mu       sync.RWMutex
}

// NewManager creates a new session manager.
func NewManager(newSim SimFactory, scores store.ScoreStore, opts Options) *Manager {
	return &Manager{
		newSim:   newSim,
		store:    scores,
		opts:     opts,
		sessions: make(map[string]*Session),
		byClient: make(map[string]string),
	}
}

// StartSession creates a session for a client and starts its loop.
func (m *Manager) StartSession(ctx context.Context, clientID, nickname string, sink Sink) (*Session, error) {
	m.mu.RLock()
	_, exists := m.byClient[clientID]
	m.mu.RUnlock()
	if exists {
		return nil, ErrAlreadyPlaying
	}

	sim, err := m.newSim()
	if err != nil {
		return nil, err
	}

	best := 0
	if m.store != nil {
		if best, err = m.store.Best(ctx); err != nil {
			slog.Warn("failed to load high score", "error", err)
			best = 0
		}
	}

	s := New(nickname, sim, sink, m.store, best, m.opts)
	s.OnEnd = func(s *Session) { m.remove(clientID, s.ID) }

	m.mu.Lock()
	if _, exists := m.byClient[clientID]; exists {
		m.mu.Unlock()
		return nil, ErrAlreadyPlaying
	}
	m.sessions[s.ID] = s
	m.byClient[clientID] = s.ID
	m.mu.Unlock()

	slog.Info("session created", "session", s.ID, "client", clientID)
	s.Start()
	return s, nil
}

// Get returns a session by ID.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// FindByClient returns the session owned by a client.
func (m *Manager) FindByClient(clientID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[m.byClient[clientID]]
}

// EndClient stops the client's session, if any.
func (m *Manager) EndClient(clientID string) {
	if s := m.FindByClient(clientID); s != nil {
		s.Stop()
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown stops every session and waits for their loops to exit.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	for _, s := range all {
		s.Stop()
	}
	for _, s := range all {
		<-s.Done()
	}
}

// Scores exposes the high-score store.
func (m *Manager) Scores() store.ScoreStore {
	return m.store
}

func (m *Manager) remove(clientID, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	if m.byClient[clientID] == sessionID {
		delete(m.byClient, clientID)
	}
	slog.Info("session removed", "session", sessionID)
}
