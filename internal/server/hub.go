package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 2 * time.Second
	readWait   = 60 * time.Second
	sendBuffer = 64
)

// Envelope is the websocket message frame in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type client struct {
	id   string
	send chan []byte
}

// hub tracks connected websocket clients. Slow clients drop messages rather
// than stall the tick loop.
type hub struct {
	log *slog.Logger

	mu      sync.Mutex
	clients map[string]*client
}

func newHub(log *slog.Logger) *hub {
	return &hub{log: log, clients: make(map[string]*client)}
}

func newClient() *client {
	return &client{id: uuid.NewString(), send: make(chan []byte, sendBuffer)}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("client connected", "client", c.id, "clients", n)
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.log.Info("client disconnected", "client", c.id, "clients", n)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) broadcast(typ string, v any) {
	if h.len() == 0 {
		return
	}
	msg, err := encode(typ, v)
	if err != nil {
		h.log.Error("encoding broadcast", "type", typ, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Debug("dropping message for slow client", "client", c.id, "type", typ)
		}
	}
}

func encode(typ string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: typ, Data: data})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWS upgrades the connection, sends a hello with the client id and the
// current state, then accepts paint and erase messages until the peer leaves.
// The greeting is queued before the client joins the hub.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := newClient()
	c.greet(s.snapshot())
	s.hub.add(c)
	defer s.hub.remove(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-c.send:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			break
		}
		out := s.dispatch(env)
		msg, err := encode(out.typ, out.data)
		if err != nil {
			continue
		}
		select {
		case c.send <- msg:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
}

// greet queues the hello and the initial state. It must run before the client
// is visible to broadcasts; the buffer is empty then, so neither send blocks.
func (c *client) greet(state any) {
	if msg, err := encode("hello", map[string]string{"client": c.id}); err == nil {
		c.send <- msg
	}
	if msg, err := encode("state", state); err == nil {
		c.send <- msg
	}
}

type reply struct {
	typ  string
	data any
}

func (s *Server) dispatch(env Envelope) reply {
	switch env.Type {
	case "paint":
		var req PaintRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return errorReply(err)
		}
		res, err := s.paint(req)
		if err != nil {
			return errorReply(err)
		}
		return reply{"painted", res}
	case "erase":
		var req EraseRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return errorReply(err)
		}
		res, err := s.erase(req)
		if err != nil {
			return errorReply(err)
		}
		return reply{"erased", res}
	case "state":
		return reply{"state", s.snapshot()}
	}
	return reply{"error", map[string]string{"error": "unknown message type " + env.Type}}
}

func errorReply(err error) reply {
	return reply{"error", map[string]string{"error": err.Error()}}
}
