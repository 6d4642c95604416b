package chatws

import (
	"encoding/json"
	"fmt"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

// Event is pushed to every connected client subscribed to one of its
// channels. Clients are receive-only; all writes go through the REST API.
type Event struct {
	Type      string   `json:"type"`
	Channels  []string `json:"-"`
	Data      any      `json:"data,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	events     chan Event
	logger     zerolog.Logger
}

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	channel string
	send    chan []byte
}

func StudentChannel(userID int64) string {
	return fmt.Sprintf("student:%d", userID)
}

func CounselorChannel(counselorID int64) string {
	return fmt.Sprintf("counselor:%d", counselorID)
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		logger:     logger,
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, channel string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		channel: channel,
		send:    make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.channel]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.channel] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.channel]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.channel)
			}
		case event := <-h.events:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast never blocks callers; events are dropped when the hub queue
// is full.
func (h *Hub) Broadcast(event Event) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	select {
	case h.events <- event:
	default:
		h.logger.Warn().Str("type", event.Type).Msg("event queue full, dropping event")
	}
}

func (h *Hub) deliver(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("encode event")
		return
	}
	for _, channel := range event.Channels {
		h.sendToChannel(channel, payload)
	}
}

func (h *Hub) sendToChannel(channel string, payload []byte) {
	set, ok := h.clients[channel]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, channel)
	}
}

// ReadPump drains inbound frames until the connection drops. Client
// frames carry no commands; they only keep the connection alive.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
