package backend

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/joannywerner/registrar/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Watchers only send control frames
	maxMessageSize = 512

	// Events queued per watcher before it is dropped as too slow
	sendBuffer = 16
)

// EventRegistered is the only event type the backend emits.
const EventRegistered = "registrado"

// Event is one message on the events stream.
type Event struct {
	Type    string  `json:"type"`
	Product Product `json:"producto"`
}

type watcher struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans registration events out to websocket watchers.
type Hub struct {
	upgrader websocket.Upgrader

	mu       sync.Mutex
	watchers map[*watcher]struct{}
	closed   bool
	wg       sync.WaitGroup
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the backend is a local development tool; any origin may watch
			CheckOrigin: func(*http.Request) bool { return true },
		},
		watchers: make(map[*watcher]struct{}),
	}
}

// ServeHTTP upgrades the request and streams events until the peer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		logging.Warn("Websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	wt := &watcher{conn: conn, send: make(chan Event, sendBuffer)}
	if !h.add(wt) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	logging.LogConnection(r.RemoteAddr, "watcher_connected")

	go func() {
		defer h.wg.Done()
		h.writePump(wt)
	}()
	h.readPump(wt)

	h.remove(wt)
	logging.LogConnection(r.RemoteAddr, "watcher_disconnected")
}

func (h *Hub) add(wt *watcher) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.watchers[wt] = struct{}{}
	h.wg.Add(1)
	return true
}

// remove unregisters wt and stops its write pump. Safe to call twice.
func (h *Hub) remove(wt *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.watchers[wt]; !ok {
		return
	}
	delete(h.watchers, wt)
	close(wt.send)
}

// readPump discards incoming frames and returns when the peer goes away.
func (h *Hub) readPump(wt *watcher) {
	wt.conn.SetReadLimit(maxMessageSize)
	_ = wt.conn.SetReadDeadline(time.Now().Add(pongWait))
	wt.conn.SetPongHandler(func(string) error {
		return wt.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := wt.conn.NextReader(); err != nil {
			return
		}
	}
}

// writePump is the only writer on wt.conn.
func (h *Hub) writePump(wt *watcher) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = wt.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-wt.send:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = wt.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := wt.conn.WriteJSON(ev); err != nil {
				logging.Debug("Failed to write event", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wt.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast queues ev for every watcher. A watcher whose queue is full is
// disconnected rather than allowed to stall registrations.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for wt := range h.watchers {
		select {
		case wt.send <- ev:
		default:
			logging.Warn("Dropping slow watcher", zap.String("remote_addr", wt.conn.RemoteAddr().String()))
			delete(h.watchers, wt)
			close(wt.send)
		}
	}
}

// Watchers returns the number of connected watchers.
func (h *Hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

// Close sends a close frame to every watcher and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for wt := range h.watchers {
		delete(h.watchers, wt)
		close(wt.send)
	}
	h.mu.Unlock()

	h.wg.Wait()
}
