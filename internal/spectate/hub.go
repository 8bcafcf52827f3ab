// Package spectate broadcasts live match frames to websocket watchers.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Mshel/torsnake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	Path          = "/spectate"
	MaxSpectators = 64

	sendBufferSize = 16
	writeWait      = 5 * time.Second
)

type PlayerFrame struct {
	Name  string             `json:"name"`
	Dead  bool               `json:"dead"`
	Board game.BoardSnapshot `json:"board"`
}

// Frame is one tick of one match.
type Frame struct {
	RunID   string        `json:"run_id"`
	Mode    string        `json:"mode"`
	Tick    int           `json:"tick"`
	Outcome string        `json:"outcome"`
	Players []PlayerFrame `json:"players"`
}

// NewFrame captures the current state of a match.
func NewFrame(gm *game.GameManager) Frame {
	frame := Frame{
		RunID:   gm.RunID,
		Mode:    gm.Mode.String(),
		Tick:    gm.TickCount(),
		Outcome: gm.Outcome().String(),
	}
	for _, player := range gm.Players() {
		frame.Players = append(frame.Players, PlayerFrame{
			Name:  player.Name,
			Dead:  player.Dead,
			Board: player.Board.Snapshot(),
		})
	}
	return frame
}

type client struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected spectator. Publish never blocks the
// game loop: a spectator whose buffer is full misses the frame.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin:       func(r *http.Request) bool { return true },
			ReadBufferSize:    1024,
			WriteBufferSize:   4096,
			EnableCompression: true,
		},
		clients: make(map[string]*client),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Spectator upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{id: uuid.NewString(), ws: ws, send: make(chan []byte, sendBufferSize)}
	if !h.register(c) {
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many spectators"),
			time.Now().Add(writeWait))
		ws.Close()
		return
	}
	log.Info("Spectator connected", "id", c.id, "remote", r.RemoteAddr, "count", h.ClientCount())

	go h.writeLoop(c)
	h.readLoop(c)
}

// NewServer serves hub at Path on addr.
func NewServer(addr string, hub *Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(Path, hub)
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: writeWait}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.clients) >= MaxSpectators {
		return false
	}
	h.clients[c.id] = c
	return true
}

// unregister closes the client's send channel exactly once.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// readLoop drains the connection until the spectator leaves; anything they send is ignored.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		c.ws.Close()
		log.Info("Spectator disconnected", "id", c.id)
	}()

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("Spectator read error", "id", c.id, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	for data := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug("Spectator write failed", "id", c.id, "error", err)
			c.ws.Close()
			return
		}
	}
}

// Publish queues frame for every spectator. It is safe to call from many games at once.
func (h *Hub) Publish(frame Frame) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) == 0 {
		return
	}

	data, err := json.Marshal(frame)
	if err != nil {
		log.Error("Failed to encode frame", "run_id", frame.RunID, "error", err)
		return
	}
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.ws.Close()
	}
}
