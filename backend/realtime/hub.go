package realtime

import (
	"sync"

	"project/backend/models"
)

// Frame is the wire envelope for every websocket message, in both directions.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// frameWriter is the slice of the websocket connection the hub writes to.
// *websocket.Conn satisfies it; tests substitute a recorder.
type frameWriter interface {
	WriteJSON(v interface{}) error
}

// Client wraps one websocket connection. The mutex serializes writes:
// broadcasts and direct replies may race on the same connection.
type Client struct {
	mu   sync.Mutex
	conn frameWriter
}

func newClient(conn frameWriter) *Client {
	return &Client{conn: conn}
}

// Send writes one event frame to this client.
func (c *Client) Send(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(Frame{Event: event, Data: data})
}

// room is the set of clients subscribed to one category's updates.
type room struct {
	mu          sync.Mutex
	subscribers map[*Client]struct{}
}

func newRoom() *room {
	return &room{subscribers: make(map[*Client]struct{})}
}

func (r *room) join(client *Client) {
	r.mu.Lock()
	r.subscribers[client] = struct{}{}
	r.mu.Unlock()
}

func (r *room) leave(client *Client) {
	r.mu.Lock()
	delete(r.subscribers, client)
	r.mu.Unlock()
}

func (r *room) snapshot() []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	clients := make([]*Client, 0, len(r.subscribers))
	for client := range r.subscribers {
		clients = append(clients, client)
	}
	return clients
}

// Hub keeps one room per category. Membership is additive: a client that
// requests several categories stays subscribed to all of them until it
// disconnects.
type Hub struct {
	mu    sync.Mutex
	rooms map[models.Category]*room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[models.Category]*room)}
}

func (h *Hub) room(category models.Category) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[category]
	if ok {
		return r
	}
	r = newRoom()
	h.rooms[category] = r
	return r
}

// Join subscribes a client to a category's broadcasts.
func (h *Hub) Join(category models.Category, client *Client) {
	h.room(category).join(client)
}

// Remove drops a client from every room it joined.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.Unlock()

	for _, r := range rooms {
		r.leave(client)
	}
}

// Broadcast sends one event to every subscriber of a category, the actor
// included. Delivery is best-effort: a client whose write fails is skipped,
// its read loop will notice the dead connection and clean up.
func (h *Hub) Broadcast(category models.Category, event string, data interface{}) {
	for _, client := range h.room(category).snapshot() {
		_ = client.Send(event, data)
	}
}
