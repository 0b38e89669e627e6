package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/formify-go/internal/application/builder"
	"github.com/linskybing/formify-go/internal/config"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum number of events buffered before forcing a send.
	batchSize = 50

	// Maximum time an event waits in the buffer.
	flushFrequency = 100 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimRight(r.Header.Get("Origin"), "/")
		if origin == "" || origin == config.PublicOrigin {
			return true
		}
		for _, o := range config.AllowedOrigins {
			if origin == strings.TrimRight(o, "/") {
				return true
			}
		}
		if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
			return true
		}
		log.Printf("[WS] rejected origin %q for host %s", origin, r.Host)
		return false
	},
}

// StreamSession godoc
// @Summary Stream editing session events
// @Description Upgrades to a websocket. Events are sent as JSON arrays in
// @Description batches; the first batch carries the current schema.
// @Tags builder
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param token query string false "JWT for browsers that cannot set headers"
// @Router /ws/builder/{sid} [get]
func (h *BuilderHandler) StreamSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	events, unsubscribe := s.Subscribe()
	defer unsubscribe()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed for session %s: %v", s.ID, err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	f, selected := s.Snapshot()
	initial := builder.Event{Type: builder.EventSchemaChanged, Form: f, SelectedID: selected, At: time.Now()}

	go func() {
		defer func() { _ = conn.Close() }()

		pingTicker := time.NewTicker(pingPeriod)
		defer pingTicker.Stop()
		flushTicker := time.NewTicker(flushFrequency)
		defer flushTicker.Stop()

		buffer := []builder.Event{initial}
		flush := func() error {
			if len(buffer) == 0 {
				return nil
			}
			data, err := json.Marshal(buffer)
			if err != nil {
				return err
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
			buffer = buffer[:0]
			return nil
		}

		for {
			select {
			case e, ok := <-events:
				if !ok {
					_ = flush()
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
					cancel()
					return
				}
				buffer = append(buffer, e)
				if len(buffer) >= batchSize {
					if err := flush(); err != nil {
						cancel()
						return
					}
				}

			case <-flushTicker.C:
				if err := flush(); err != nil {
					cancel()
					return
				}

			case <-pingTicker.C:
				if err := flush(); err != nil {
					cancel()
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					cancel()
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] session %s: %v", s.ID, err)
			}
			break
		}
	}
}
