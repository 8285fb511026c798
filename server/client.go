package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 1 << 16
)

// client is one renderer socket. Writes happen only in writePump.
type client struct {
	ws     *websocket.Conn
	codec  codec
	remote string

	mu     sync.Mutex
	closed bool
	send   chan frame
}

func newClient(ws *websocket.Conn, cd codec, remote string) *client {
	return &client{
		ws:     ws,
		codec:  cd,
		remote: remote,
		send:   make(chan frame, SendQueue),
	}
}

// enqueue queues f without blocking. It reports false when the frame was
// dropped because the queue is full or the socket is gone.
func (c *client) enqueue(f frame) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- f:
		return true
	default:
		return false
	}
}

// close ends writePump. It is safe to call more than once.
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(f.messageType, f.data); err != nil {
				return
			}
		case <-ping.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump(s *Server) {
	defer func() {
		s.unregister(c)
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debugw("read failed", "remote", c.remote, "error", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		var cmd Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			c.reply(errorMessage(err))
			continue
		}
		if err := s.handle(cmd); err != nil {
			s.log.Infow("command rejected", "remote", c.remote, "type", cmd.Type, "error", err)
			c.reply(errorMessage(err))
		}
	}
}

func (c *client) reply(msg Message) {
	b, err := c.codec.marshal(msg)
	if err != nil {
		return
	}
	c.enqueue(frame{messageType: c.codec.messageType, data: b})
}
