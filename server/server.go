// Package server bridges an arena engine to external renderers over websockets.
//
// Every connected socket receives the full snapshot after each tick and after
// each lifecycle command, and may send commands back. There is one game per
// process; every socket sees and steers the same board.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/brensch/snekarena/engine"
	"github.com/brensch/snekarena/game"
)

// SendQueue is the number of frames buffered per socket before frames drop.
const SendQueue = 64

var errUnknownCommand = errors.New("unknown command")

// Server serves /ws, /metrics and /healthz for one Driver.
type Server struct {
	d   *engine.Driver
	log *zap.SugaredLogger
	mux *http.ServeMux

	upgrader websocket.Upgrader

	updates     <-chan engine.Update
	unsubscribe func()

	mu      sync.Mutex
	clients map[*client]struct{}
}

// New returns a server subscribed to d. Call Run to start broadcasting.
func New(d *engine.Driver, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{
		d:   d,
		log: log,
		mux: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// renderers are local tools, not browsers on other origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
	s.updates, s.unsubscribe = d.Subscribe(SendQueue)

	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/metrics", s.handleMetrics)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run forwards driver updates to every socket until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	defer s.unsubscribe()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return nil
		case u, ok := <-s.updates:
			if !ok {
				return nil
			}
			s.broadcast(snapshotMessage(u))
		}
	}
}

// Clients returns the number of connected sockets.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) broadcast(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clients) == 0 {
		return
	}
	codecs := make(map[string]codec, 2)
	for c := range s.clients {
		codecs[c.codec.name] = c.codec
	}
	frames, err := encodeAll(msg, codecs)
	if err != nil {
		s.log.Errorw("encode broadcast", "error", err)
		return
	}
	for c := range s.clients {
		if !c.enqueue(frames[c.codec.name]) {
			s.log.Debugw("send queue full, dropped frame", "remote", c.remote)
		}
	}
}

// register queues the current board for c and adds it to the broadcast set.
// Both happen under s.mu, so no broadcast can land between the greeting and
// the registration.
func (s *Server) register(c *client) error {
	s.mu.Lock()
	first, err := c.codec.marshal(snapshotMessage(engine.Update{Snapshot: s.d.Snapshot()}))
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encode greeting: %w", err)
	}
	c.enqueue(frame{messageType: c.codec.messageType, data: first})
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()

	s.log.Infow("renderer connected", "remote", c.remote, "codec", c.codec.name, "clients", n)
	return nil
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	n := len(s.clients)
	s.mu.Unlock()
	c.close()
	if ok {
		s.log.Infow("renderer disconnected", "remote", c.remote, "clients", n)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		c.close()
	}
}

// handleWS upgrades /ws?codec=json|msgpack.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	cd, err := codecByName(strings.ToLower(r.URL.Query().Get("codec")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := newClient(ws, cd, r.RemoteAddr)
	if err := s.register(c); err != nil {
		s.log.Errorw("register renderer", "remote", c.remote, "error", err)
		_ = ws.Close()
		return
	}

	go c.writePump()
	go c.readPump(s)
}

// handle applies one command. The returned error is sent back to the caller.
func (s *Server) handle(cmd Command) error {
	switch strings.ToLower(cmd.Type) {
	case "start":
		speed := cmd.Speed
		if speed == 0 {
			speed = engine.DefaultSpeedMs
		}
		mapName := cmd.Map
		if mapName == "" {
			mapName = string(game.MapClassic)
		}
		settings, err := engine.ParseSettings(cmd.Players, cmd.Colors, mapName, speed)
		if err != nil {
			return err
		}
		return s.d.Start(settings)
	case "pause":
		s.d.TogglePause()
	case "reset":
		s.d.Reset()
	case "speed":
		return s.d.SetSpeed(cmd.Speed)
	case "move":
		dir, err := game.ParseDirection(cmd.Dir)
		if err != nil {
			return err
		}
		// rejected input is silent, like a key press that does nothing
		s.d.SetDirection(cmd.Player, dir)
	default:
		return fmt.Errorf("%w %q", errUnknownCommand, cmd.Type)
	}
	return nil
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.d.Snapshot()
	payload := map[string]any{
		"game":    snap.GameID,
		"status":  snap.Status,
		"turn":    snap.Turn,
		"clients": s.Clients(),
		"metrics": s.d.Engine().Metrics().Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
