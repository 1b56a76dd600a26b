package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"nursery-locator/internal/api/dto"
	"nursery-locator/internal/domain"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// subscriber owns one websocket. Only its writer goroutine writes to conn.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// ViewHub fans rendered views out to websocket subscribers of each session.
// Publish never writes to a socket; a subscriber whose queue is full is
// dropped.
type ViewHub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]*subscriber
}

func NewViewHub() *ViewHub {
	return &ViewHub{subs: make(map[string]map[*websocket.Conn]*subscriber)}
}

// Subscribe registers conn for updates on a session and queues the view
// returned by current as its first message. current runs after the
// registration and before any later Publish reaches conn, so the stream
// never starts behind the stored session.
func (h *ViewHub) Subscribe(sessionID string, conn *websocket.Conn, current func() (domain.View, error)) error {
	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	view, err := current()
	if err != nil {
		return err
	}
	data, err := viewMessage(view)
	if err != nil {
		return err
	}

	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*websocket.Conn]*subscriber)
	}
	h.subs[sessionID][conn] = sub
	sub.send <- data

	go h.writeLoop(sessionID, sub)
	return nil
}

func (h *ViewHub) Unsubscribe(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(sessionID, conn)
}

// Publish implements ports.ViewPublisher.
func (h *ViewHub) Publish(sessionID string, view domain.View) {
	data, err := viewMessage(view)
	if err != nil {
		slog.Error("view stream: marshal failed", "session", sessionID, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, sub := range h.subs[sessionID] {
		select {
		case sub.send <- data:
		default:
			slog.Warn("view stream: subscriber too slow, dropping", "session", sessionID)
			h.removeLocked(sessionID, conn)
		}
	}
}

// Subscribers returns the number of open streams for a session.
func (h *ViewHub) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}

func (h *ViewHub) writeLoop(sessionID string, sub *subscriber) {
	defer sub.conn.Close()

	for data := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Unsubscribe(sessionID, sub.conn)
			return
		}
	}
}

// removeLocked closes the subscriber's queue; its writer then closes the
// socket.
func (h *ViewHub) removeLocked(sessionID string, conn *websocket.Conn) {
	conns, ok := h.subs[sessionID]
	if !ok {
		return
	}
	if sub, ok := conns[conn]; ok {
		close(sub.send)
		delete(conns, conn)
	}
	if len(conns) == 0 {
		delete(h.subs, sessionID)
	}
}

func viewMessage(v domain.View) ([]byte, error) {
	return json.Marshal(dto.WSMessage{Type: "view", Payload: dto.NewViewResponse(v)})
}

// NewUpgrader accepts same-origin requests plus the listed origins; "*"
// accepts any origin.
func NewUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			slog.Warn("websocket: rejected origin", "origin", origin)
			return false
		},
	}
}
