package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/mazechase-server/internal/session"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	lobby    *LobbyHandler
	gameplay *GameplayHandler
}

// NewRouter creates a new message router.
func NewRouter(sm *session.Manager) *Router {
	return &Router{
		lobby:    NewLobbyHandler(sm),
		gameplay: NewGameplayHandler(sm),
	}
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Session messages
	case ws.TypeStartGame:
		r.lobby.HandleStartGame(cm.Client, msg)
	case ws.TypeLeaveGame:
		r.lobby.HandleLeaveGame(cm.Client, msg)
	case ws.TypeHighScores:
		r.lobby.HandleHighScores(cm.Client, msg)

	// Gameplay messages
	case ws.TypeInput:
		r.gameplay.HandleInput(cm.Client, msg)
	case ws.TypePause:
		r.gameplay.HandlePause(cm.Client, msg)
	case ws.TypeResume:
		r.gameplay.HandleResume(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.lobby.HandleDisconnect(client)
}
