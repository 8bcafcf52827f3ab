package spectate

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mshel/torsnake/internal/game"
	"github.com/gorilla/websocket"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + Path
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients=%d want=%d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func newMatch(t *testing.T) *game.GameManager {
	t.Helper()
	settings := game.DefaultSettings()
	settings.Seed = 5
	gm, err := game.NewGameManager(game.MatchConfig{Mode: game.ModeVersusBot, Settings: settings})
	if err != nil {
		t.Fatalf("NewGameManager: %v", err)
	}
	t.Cleanup(gm.Close)
	return gm
}

func TestHub_PublishReachesSpectators(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	first, second := dial(t, server), dial(t, server)
	waitForClients(t, hub, 2)

	gm := newMatch(t)
	gm.Tick()
	hub.Publish(NewFrame(gm))

	for i, ws := range []*websocket.Conn{first, second} {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		var frame Frame
		if err := ws.ReadJSON(&frame); err != nil {
			t.Fatalf("spectator %d read: %v", i, err)
		}
		if frame.RunID != gm.RunID || frame.Tick != 1 || frame.Mode != "versus-bot" {
			t.Fatalf("spectator %d frame=%+v", i, frame)
		}
		if len(frame.Players) != 2 || len(frame.Players[0].Board.Snake) < 2 {
			t.Fatalf("spectator %d players=%+v", i, frame.Players)
		}
	}
}

func TestHub_PublishWithoutSpectators(t *testing.T) {
	hub := NewHub()
	hub.Publish(NewFrame(newMatch(t)))

	var nilHub *Hub
	nilHub.Publish(Frame{})
}

func TestHub_SlowSpectatorDoesNotBlock(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	dial(t, server) // never reads
	waitForClients(t, hub, 1)

	gm := newMatch(t)
	done := make(chan struct{})
	go func() {
		for range 10 * sendBufferSize {
			gm.Tick()
			hub.Publish(NewFrame(gm))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("publish blocked on a slow spectator")
	}
}

func TestHub_Disconnect(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()

	ws := dial(t, server)
	waitForClients(t, hub, 1)

	ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	ws.Close()
	waitForClients(t, hub, 0)

	hub.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + Path
	late, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial after close: %v", err)
	}
	defer late.Close()
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		t.Fatalf("err=%v want close 1013", err)
	}
}
