package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hydro-intrinsic/internal/orchestrator"
)

// LiveFeedHandler broadcasts orchestrator.DayResult events to connected
// websocket clients as a rolling run progresses, grounded on the
// miner-scheduler example's WebServer (upgrader + sync.Map clients +
// broadcast channel + fan-out broadcaster goroutine). Messages are sent as
// they are published, not on a timer.
type LiveFeedHandler struct {
	upgrader  websocket.Upgrader
	clients   sync.Map
	broadcast chan []byte
	done      chan struct{}
}

// NewLiveFeedHandler starts the broadcast loop and returns a handler ready
// to accept connections and Publish events.
func NewLiveFeedHandler() *LiveFeedHandler {
	h := &LiveFeedHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		broadcast: make(chan []byte, 256),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *LiveFeedHandler) run() {
	for {
		select {
		case message := <-h.broadcast:
			h.clients.Range(func(key, _ any) bool {
				conn := key.(*websocket.Conn)
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					h.clients.Delete(conn)
				}
				return true
			})
		case <-h.done:
			return
		}
	}
}

// Publish enqueues one day's result for broadcast to all connected clients.
// Non-blocking: a full channel drops the update rather than stalling the
// orchestrator's day loop.
func (h *LiveFeedHandler) Publish(d orchestrator.DayResult) {
	msg, err := json.Marshal(map[string]any{
		"type":      "day_result",
		"day":       d.Day,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"result":    d,
	})
	if err != nil {
		log.Printf("livefeed: marshal day result: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("livefeed: broadcast channel full, dropping day %d update", d.Day)
	}
}

// Serve handles GET /api/v1/ws.
func (h *LiveFeedHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("livefeed: upgrade error: %v", err)
		return
	}
	h.clients.Store(conn, true)
	defer func() {
		h.clients.Delete(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("livefeed: read error: %v", err)
			}
			break
		}
	}
}

// Close stops the broadcast loop and disconnects all clients.
func (h *LiveFeedHandler) Close() {
	close(h.done)
	h.clients.Range(func(key, _ any) bool {
		key.(*websocket.Conn).Close()
		return true
	})
}
