package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/session"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	sm *session.Manager
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(sm *session.Manager) *GameplayHandler {
	return &GameplayHandler{sm: sm}
}

type inputRequest struct {
	Dir string `json:"dir"`
}

// HandleInput sets the direction the player steers toward.
func (h *GameplayHandler) HandleInput(client *ws.Client, msg ws.Message) {
	var req inputRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid input data"))
		return
	}
	dir, err := game.ParseDirection(req.Dir)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid direction"))
		return
	}

	s := h.active(client)
	if s == nil {
		return
	}
	s.SetIntent(dir)

	slog.Debug("player input", "session", s.ID, "dir", dir.String())
}

// HandlePause pauses the client's session.
func (h *GameplayHandler) HandlePause(client *ws.Client, _ ws.Message) {
	if s := h.active(client); s != nil {
		s.Pause()
	}
}

// HandleResume resumes the client's session.
func (h *GameplayHandler) HandleResume(client *ws.Client, _ ws.Message) {
	if s := h.active(client); s != nil {
		s.Resume()
	}
}

// active returns the client's running or paused session, reporting an
// error to the client when there is none.
func (h *GameplayHandler) active(client *ws.Client) *session.Session {
	s := h.sm.FindByClient(client.ID)
	if s == nil || s.Status() == session.StatusOver {
		client.SendMessage(ws.NewErrorMessage("game is not in progress"))
		return nil
	}
	return s
}
