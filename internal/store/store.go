package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one finished game.
type Entry struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry stamps a new entry with an ID and the current time.
func NewEntry(nickname string, score, level int) *Entry {
	return &Entry{
		ID:        uuid.New().String(),
		Nickname:  nickname,
		Score:     score,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}
}

// ScoreStore defines the interface for persistent high-score storage.
type ScoreStore interface {
	// Submit records a finished game.
	Submit(ctx context.Context, e *Entry) error
	// Top returns up to limit entries, best score first.
	Top(ctx context.Context, limit int) ([]Entry, error)
	// Best returns the highest score recorded, or 0.
	Best(ctx context.Context) (int, error)
	// Close releases storage resources.
	Close() error
}

// MaxLimit caps Top queries.
const MaxLimit = 100

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
