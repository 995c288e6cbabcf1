package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/maze"
	"github.com/ugaemi/mazechase-server/internal/session"
	"github.com/ugaemi/mazechase-server/internal/store"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

type sentMessage struct {
	Type string
	Data json.RawMessage
}

func newTestClient(id string) (*ws.Client, chan sentMessage) {
	ch := make(chan sentMessage, 64)
	client := &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}

	// Read sent messages in background
	go func() {
		for data := range client.Send {
			var msg sentMessage
			json.Unmarshal(data, &msg)
			ch <- msg
		}
	}()

	return client, ch
}

func setupRouter(t *testing.T) (*Router, *session.Manager, *store.MemoryStore) {
	t.Helper()
	scores := store.NewMemoryStore()
	sm := session.NewManager(func() (*game.Simulation, error) {
		return game.NewSimulation(maze.Classic(), game.DefaultTuning())
	}, scores, session.Options{Lives: 3, BroadcastRate: 10})
	t.Cleanup(sm.Shutdown)
	return NewRouter(sm), sm, scores
}

func send(r *Router, client *ws.Client, msgType string, payload any) {
	var data json.RawMessage
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	raw, _ := json.Marshal(ws.Message{Type: msgType, Data: data})
	r.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})
}

// waitFor skips messages until one of msgType arrives.
func waitFor(t *testing.T, ch chan sentMessage, msgType string) sentMessage {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s", msgType)
			return sentMessage{}
		}
	}
}

func errorText(t *testing.T, msg sentMessage) string {
	t.Helper()
	var e ws.ErrorMessage
	require.NoError(t, json.Unmarshal(msg.Data, &e))
	return e.Message
}

func TestHandleMessage_Invalid(t *testing.T) {
	r, _, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	r.HandleMessage(&ws.ClientMessage{Client: client, Data: []byte("{nope")})
	assert.Equal(t, "invalid message format", errorText(t, waitFor(t, ch, ws.TypeError)))

	send(r, client, "teleport", nil)
	assert.Equal(t, "unknown message type: teleport", errorText(t, waitFor(t, ch, ws.TypeError)))
}

func TestHandleStartGame(t *testing.T) {
	r, sm, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(r, client, ws.TypeStartGame, startGameRequest{Nickname: "pac"})

	msg := waitFor(t, ch, ws.TypeSessionInfo)
	var info struct {
		SessionID string `json:"session_id"`
		Lives     int    `json:"lives"`
		Level     int    `json:"level"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &info))
	assert.NotEmpty(t, info.SessionID)
	assert.Equal(t, 3, info.Lives)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 1, sm.Count())

	waitFor(t, ch, ws.TypeGameState)

	send(r, client, ws.TypeStartGame, startGameRequest{Nickname: "pac"})
	assert.Equal(t, "already in a game", errorText(t, waitFor(t, ch, ws.TypeError)))
}

func TestHandleStartGame_Validation(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		want     string
	}{
		{"empty", "  ", "nickname is required"},
		{"too long", "abcdefghijklmnopq", "nickname is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sm, _ := setupRouter(t)
			client, ch := newTestClient("c1")
			send(r, client, ws.TypeStartGame, startGameRequest{Nickname: tt.nickname})
			assert.Equal(t, tt.want, errorText(t, waitFor(t, ch, ws.TypeError)))
			assert.Zero(t, sm.Count())
		})
	}
}

func TestHandleInput(t *testing.T) {
	r, sm, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(r, client, ws.TypeInput, inputRequest{Dir: "up"})
	assert.Equal(t, "game is not in progress", errorText(t, waitFor(t, ch, ws.TypeError)))

	send(r, client, ws.TypeStartGame, startGameRequest{Nickname: "pac"})
	waitFor(t, ch, ws.TypeSessionInfo)

	send(r, client, ws.TypeInput, inputRequest{Dir: "sideways"})
	assert.Equal(t, "invalid direction", errorText(t, waitFor(t, ch, ws.TypeError)))

	send(r, client, ws.TypeInput, inputRequest{Dir: "right"})
	s := sm.FindByClient("c1")
	require.NotNil(t, s)
	assert.Eventually(t, func() bool {
		return s.Snapshot().Player.Dir == game.DirRight
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHandlePauseResume(t *testing.T) {
	r, sm, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(r, client, ws.TypeStartGame, startGameRequest{Nickname: "pac"})
	waitFor(t, ch, ws.TypeSessionInfo)
	s := sm.FindByClient("c1")
	require.NotNil(t, s)

	send(r, client, ws.TypePause, nil)
	assert.Equal(t, session.StatusPaused, s.Status())
	tick := s.Snapshot().Tick
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, tick, s.Snapshot().Tick)

	send(r, client, ws.TypeResume, nil)
	assert.Equal(t, session.StatusRunning, s.Status())
	assert.Eventually(t, func() bool {
		return s.Snapshot().Tick > tick
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHandleLeaveGame(t *testing.T) {
	r, sm, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(r, client, ws.TypeLeaveGame, nil)
	assert.Equal(t, "not in a game", errorText(t, waitFor(t, ch, ws.TypeError)))

	send(r, client, ws.TypeStartGame, startGameRequest{Nickname: "pac"})
	waitFor(t, ch, ws.TypeSessionInfo)
	s := sm.FindByClient("c1")
	require.NotNil(t, s)

	send(r, client, ws.TypeLeaveGame, nil)
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}
	assert.Zero(t, sm.Count())
}

func TestHandleDisconnect(t *testing.T) {
	r, sm, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(r, client, ws.TypeStartGame, startGameRequest{Nickname: "pac"})
	waitFor(t, ch, ws.TypeSessionInfo)
	s := sm.FindByClient("c1")
	require.NotNil(t, s)

	r.HandleDisconnect(client)
	<-s.Done()
	assert.Zero(t, sm.Count())
}

func TestHandleHighScores(t *testing.T) {
	r, _, scores := setupRouter(t)
	ctx := context.Background()
	for i, score := range []int{300, 1200, 800} {
		require.NoError(t, scores.Submit(ctx, store.NewEntry("p", score, i+1)))
	}
	client, ch := newTestClient("c1")

	send(r, client, ws.TypeHighScores, highScoresRequest{Limit: 2})
	var resp highScoresResponse
	require.NoError(t, json.Unmarshal(waitFor(t, ch, ws.TypeHighScores).Data, &resp))
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, 1200, resp.Entries[0].Score)
	assert.Equal(t, 800, resp.Entries[1].Score)

	send(r, client, ws.TypeHighScores, nil)
	require.NoError(t, json.Unmarshal(waitFor(t, ch, ws.TypeHighScores).Data, &resp))
	assert.Len(t, resp.Entries, 3)
}
