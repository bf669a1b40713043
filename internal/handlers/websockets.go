package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	audit "home_energy_audit"
	"home_energy_audit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 16 // 64 KB, a full input record is well under this
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect serves the live recompute stream: each text frame is a raw input
// record, each reply is the full audit result for it. Nothing is persisted,
// so a form UI can stream every edit without flooding the run log.
func (h *Handler) wsConnect(c *gin.Context) {
	sort := strings.ToLower(strings.TrimSpace(c.Query("sort")))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine delivers input frames; closing inputs signals
	// disconnect. done releases a reader stuck forwarding a frame after this
	// loop has already returned.
	inputs := make(chan []byte)
	done := make(chan struct{})
	defer close(done)
	go h.startReader(conn, inputs, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case raw, ok := <-inputs:
			if !ok {
				return
			}
			if err := h.sendResult(conn, raw, sort); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		}
	}
}

// Helper: startReader forwards incoming frames and closes the channel on
// disconnect. The send selects on done so the goroutine exits even when the
// writer loop stopped consuming before this frame was handed over.
func (h *Handler) startReader(conn *websocket.Conn, inputs chan<- []byte, done <-chan struct{}) {
	defer close(inputs)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		select {
		case inputs <- raw:
		case <-done:
			return
		}
	}
}

// Helper: sendResult evaluates one raw frame and writes the reply with a write deadline.
// Malformed frames get an error envelope; only write failures end the loop.
func (h *Handler) sendResult(conn *websocket.Conn, raw []byte, sort string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	var in audit.InputRecord
	if err := json.Unmarshal(raw, &in); err != nil {
		return conn.WriteJSON(wsEnvelope{Type: "error", Error: errInvalidBodyPref + err.Error()})
	}

	result := h.services.Audit.Preview(in, service.EvaluateParams{Sort: sort})
	return conn.WriteJSON(wsEnvelope{Type: "result", Data: result})
}
