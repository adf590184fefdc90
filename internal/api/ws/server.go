// Package ws is the websocket transport for the interpretation
// pipeline. It owns the upgrade, the handshake parameter parsing and
// the close-code mapping; everything after the upgrade is driven by
// the interpret controller.
package ws

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"live-interpreter-service/internal/service/interpret"
)

const closeWriteTimeout = 5 * time.Second

// closeCodes maps policy close reasons to websocket close codes. The
// 4xxx range mirrors HTTP status semantics for handshake failures.
var closeCodes = map[interpret.CloseCode]int{
	interpret.CloseNormal:        websocket.CloseNormalClosure,
	interpret.CloseBadRequest:    4400,
	interpret.CloseUnauthorized:  4401,
	interpret.CloseForbidden:     4403,
	interpret.CloseInternalError: websocket.CloseInternalServerErr,
}

// Server upgrades interpretation requests and hands the resulting
// connections to the controller.
type Server struct {
	upgrader      websocket.Upgrader
	controller    *interpret.Controller
	maxChunkBytes int64
	log           zerolog.Logger
}

// NewServer creates the websocket endpoint handler.
func NewServer(controller *interpret.Controller, maxChunkBytes int64, log zerolog.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 4 * 1024,
			// Browser clients connect from app origins; access control
			// happens via the token, not the Origin header.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		controller:    controller,
		maxChunkBytes: maxChunkBytes,
		log:           log,
	}
}

// Handle is the HTTP handler for the interpretation endpoint.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	params, err := parseParams(r.URL.Query())
	if err != nil {
		// Upgrade anyway so the client receives a close frame with a
		// usable code instead of a bare HTTP error.
		wsc, upgradeErr := s.upgrader.Upgrade(w, r, nil)
		if upgradeErr != nil {
			return
		}
		s.log.Debug().Err(err).Msg("Rejecting connection with malformed parameters")
		conn := newConn(wsc, s.maxChunkBytes)
		_ = conn.Close(interpret.CloseBadRequest, err.Error())
		return
	}

	wsc, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}

	conn := newConn(wsc, s.maxChunkBytes)
	s.controller.HandleConnection(r.Context(), conn, params)
}

// parseParams extracts the handshake parameters from the query string.
// Missing token or languages are left empty for the controller to
// reject; only values that cannot be parsed at all fail here.
func parseParams(q url.Values) (interpret.Params, error) {
	params := interpret.Params{
		SourceLanguage: q.Get("source_language"),
		TargetLanguage: q.Get("target_language"),
		Token:          q.Get("token"),
	}

	if raw := q.Get("session_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return interpret.Params{}, fmt.Errorf("invalid session_id %q", raw)
		}
		params.SessionID = &id
	}

	return params, nil
}

// conn adapts a gorilla websocket connection to the controller's Conn
// interface. A single pump goroutine owns all reads; Send and Close
// serialize writes under a mutex because the registry may push
// messages from outside the connection's own goroutine.
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	chunks    chan []byte
	readErr   error
	readDone  chan struct{}
	closed    chan struct{}
	pumpOnce  sync.Once
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn, maxChunkBytes int64) *conn {
	if maxChunkBytes > 0 {
		ws.SetReadLimit(maxChunkBytes)
	}
	return &conn{
		ws:       ws,
		chunks:   make(chan []byte),
		readDone: make(chan struct{}),
		closed:   make(chan struct{}),
	}
}

// readPump reads frames until the peer leaves. Binary frames carry
// audio; anything else is ignored.
func (c *conn) readPump() {
	defer close(c.readDone)
	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived) {
				c.readErr = interpret.ErrDisconnected
			} else {
				c.readErr = err
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		select {
		case c.chunks <- data:
		case <-c.closed:
			return
		}
	}
}

// ReadChunk returns the next binary audio chunk, blocking until one
// arrives, the peer disconnects, or ctx is cancelled.
func (c *conn) ReadChunk(ctx context.Context) ([]byte, error) {
	c.pumpOnce.Do(func() { go c.readPump() })

	select {
	case chunk := <-c.chunks:
		return chunk, nil
	case <-c.readDone:
		if c.readErr != nil {
			return nil, c.readErr
		}
		return nil, interpret.ErrDisconnected
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Send writes one JSON text frame to the client.
func (c *conn) Send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(v)
}

// Close writes a close frame with the mapped code, then tears the
// underlying connection down.
func (c *conn) Close(code interpret.CloseCode, reason string) error {
	wsCode, ok := closeCodes[code]
	if !ok {
		wsCode = websocket.CloseInternalServerErr
	}

	c.closeOnce.Do(func() { close(c.closed) })

	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(wsCode, reason),
		time.Now().Add(closeWriteTimeout))
	c.writeMu.Unlock()

	return c.ws.Close()
}
