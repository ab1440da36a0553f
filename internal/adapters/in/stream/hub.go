// Package stream pushes tracking frames to browsers over websocket.
//
// The Hub is a ports.Notifier and a ports.TrackingPublisher: every event is
// encoded once and fanned out to the connected clients. A client whose
// buffer is full is dropped rather than slowing the session down.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
	broadcastSize  = 1024
)

// Frame types.
const (
	FrameStatusChanged = "status_changed"
	FrameProgress      = "progress"
	FrameNotification  = "notification"
	FrameCleared       = "cleared"
)

// Frame is the JSON envelope of every message sent to clients.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type clearedData struct {
	OrderID kernel.UUID `json:"orderId"`
}

type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	lock       sync.RWMutex

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastSize),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "stream_hub"),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every client. Run must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.lock.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.lock.Unlock()
			return
		case c := <-h.register:
			h.lock.Lock()
			h.clients[c] = struct{}{}
			h.lock.Unlock()
			h.logger.DebugContext(ctx, "Stream client registered", "remote", c.conn.RemoteAddr().String())
		case c := <-h.unregister:
			h.lock.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.lock.Unlock()
		case msg := <-h.broadcast:
			h.lock.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
					h.logger.WarnContext(ctx, "Slow stream client dropped")
				}
			}
			h.lock.Unlock()
		}
	}
}

// ClientCount is the number of registered clients.
func (h *Hub) ClientCount() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and blocks until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Websocket upgrade failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	case <-r.Context().Done():
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump()
}

func (h *Hub) Notify(ctx context.Context, n ports.Notification) {
	h.enqueue(ctx, Frame{Type: FrameNotification, Data: n})
}

func (h *Hub) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	h.enqueue(ctx, Frame{Type: FrameStatusChanged, Data: event})
}

func (h *Hub) PublishProgress(ctx context.Context, event ports.ProgressEvent) {
	h.enqueue(ctx, Frame{Type: FrameProgress, Data: event})
}

func (h *Hub) PublishCleared(ctx context.Context, orderID kernel.UUID) {
	h.enqueue(ctx, Frame{Type: FrameCleared, Data: clearedData{OrderID: orderID}})
}

func (h *Hub) enqueue(ctx context.Context, frame Frame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode stream frame", "type", frame.Type, "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.WarnContext(ctx, "Stream broadcast queue full, frame dropped", "type", frame.Type)
	}
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump discards client messages and keeps the connection alive.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
