package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type envelope struct {
	accountID uuid.UUID
	message   []byte
}

// Hub tracks connected clients per account. An account may hold several
// connections at once.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	broadcast  chan []byte
	direct     chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan []byte, 1024),
		direct:     make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run processes hub events until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for id, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, id)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.accountID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.accountID] = set
			}
			set[client] = struct{}{}
			h.mutex.Unlock()
			h.debug("ws connected", client.accountID)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)
			h.debug("ws disconnected", client.accountID)

		case message := <-h.broadcast:
			for _, client := range h.snapshot(uuid.Nil) {
				h.deliver(client, message)
			}

		case env := <-h.direct:
			for _, client := range h.snapshot(env.accountID) {
				h.deliver(client, env.message)
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.accountID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.accountID)
	}
}

// snapshot returns the clients of accountID, or every client for uuid.Nil.
func (h *Hub) snapshot(accountID uuid.UUID) []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	out := make([]*Client, 0)
	for id, set := range h.clients {
		if accountID != uuid.Nil && id != accountID {
			continue
		}
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}

// deliver drops a client whose buffer is full.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		h.remove(client)
	}
}

func (h *Hub) debug(msg string, accountID uuid.UUID) {
	if h.logger == nil {
		return
	}
	h.logger.WithFields(logrus.Fields{
		"account_id":    accountID,
		"total_clients": h.ClientCount(),
	}).Debug(msg)
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		if h.logger != nil {
			h.logger.Warn("ws broadcast dropped: buffer full")
		}
	}
}

// SendTo queues message for every connection of accountID.
func (h *Hub) SendTo(accountID uuid.UUID, message []byte) {
	if h == nil || accountID == uuid.Nil {
		return
	}
	select {
	case h.direct <- envelope{accountID: accountID, message: message}:
	default:
		if h.logger != nil {
			h.logger.WithField("account_id", accountID).Warn("ws message dropped: buffer full")
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
