package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ugaemi/mazechase-server/internal/session"
	"github.com/ugaemi/mazechase-server/internal/store"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

const (
	maxNicknameLen   = 16
	defaultScoreList = 10
	storeTimeout     = 3 * time.Second
)

// LobbyHandler starts and ends sessions and serves the high-score table.
type LobbyHandler struct {
	sm *session.Manager
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(sm *session.Manager) *LobbyHandler {
	return &LobbyHandler{sm: sm}
}

type startGameRequest struct {
	Nickname string `json:"nickname"`
}

// HandleStartGame starts a new session for the client.
func (h *LobbyHandler) HandleStartGame(client *ws.Client, msg ws.Message) {
	var req startGameRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid start_game data"))
		return
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}
	if len([]rune(nickname)) > maxNicknameLen {
		client.SendMessage(ws.NewErrorMessage("nickname is too long"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	s, err := h.sm.StartSession(ctx, client.ID, nickname, client)
	if errors.Is(err, session.ErrAlreadyPlaying) {
		client.SendMessage(ws.NewErrorMessage("already in a game"))
		return
	}
	if err != nil {
		slog.Error("failed to start session", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("failed to start game"))
		return
	}

	slog.Info("player started game", "player", nickname, "session", s.ID)
}

// HandleLeaveGame abandons the client's session.
func (h *LobbyHandler) HandleLeaveGame(client *ws.Client, _ ws.Message) {
	if h.sm.FindByClient(client.ID) == nil {
		client.SendMessage(ws.NewErrorMessage("not in a game"))
		return
	}
	h.sm.EndClient(client.ID)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.sm.EndClient(client.ID)
}

type highScoresRequest struct {
	Limit int `json:"limit"`
}

type highScoresResponse struct {
	Entries []store.Entry `json:"entries"`
}

// HandleHighScores sends the best recorded games.
func (h *LobbyHandler) HandleHighScores(client *ws.Client, msg ws.Message) {
	req := highScoresRequest{Limit: defaultScoreList}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid high_scores data"))
			return
		}
	}

	scores := h.sm.Scores()
	if scores == nil {
		client.SendMessage(ws.NewErrorMessage("high scores unavailable"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	entries, err := scores.Top(ctx, req.Limit)
	if err != nil {
		slog.Error("failed to load high scores", "error", err)
		client.SendMessage(ws.NewErrorMessage("high scores unavailable"))
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}

	resp, _ := ws.NewMessage(ws.TypeHighScores, highScoresResponse{Entries: entries})
	client.SendMessage(resp)
}
