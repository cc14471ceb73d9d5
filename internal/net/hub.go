package net

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"SmartDesk/internal/logging"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// Event is one prediction as seen by feed viewers.
type Event struct {
	Session       string    `json:"session"`
	Seq           uint64    `json:"seq"`
	Empty         bool      `json:"empty"`
	Digit         int       `json:"digit"`
	Probabilities []float64 `json:"probabilities"`
	Time          time.Time `json:"time"`
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the connected viewers and fans events out to them. A viewer
// that falls behind by more than sendBuffer events is dropped.
type Hub struct {
	upgrader websocket.Upgrader
	viewers  map[*viewer]bool
	mu       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		viewers: make(map[*viewer]bool),
	}
}

func (h *Hub) add(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v] = true
	logging.Logger.Info("feed viewer connected", zap.String("addr", v.conn.RemoteAddr().String()))
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.viewers[v] {
		return
	}
	delete(h.viewers, v)
	close(v.send)
	logging.Logger.Info("feed viewer removed", zap.String("addr", v.conn.RemoteAddr().String()))
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Broadcast queues ev for every viewer without blocking the caller.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logging.Logger.Error("failed to encode feed event", zap.Error(err))
		return
	}

	var slow []*viewer
	h.mu.RLock()
	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			slow = append(slow, v)
		}
	}
	h.mu.RUnlock()

	for _, v := range slow {
		logging.Logger.Warn("feed viewer too slow, dropping", zap.String("addr", v.conn.RemoteAddr().String()))
		h.remove(v)
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.RLock()
	all := make([]*viewer, 0, len(h.viewers))
	for v := range h.viewers {
		all = append(all, v)
	}
	h.mu.RUnlock()
	for _, v := range all {
		h.remove(v)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger.Warn("feed upgrade failed", zap.Error(err))
		return
	}
	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(v)

	go h.writeLoop(v)
	h.readLoop(v)
}

// readLoop only watches for the viewer going away; viewers send nothing.
func (h *Hub) readLoop(v *viewer) {
	defer h.remove(v)
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for data := range v.send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logging.Logger.Warn("feed write failed", zap.Error(err))
			h.remove(v)
			return
		}
	}
	_ = v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
