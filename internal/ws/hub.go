// Package ws delivers session-state events to connected clients. A
// browser tab subscribes for its own user and learns about sign-ins
// and sign-outs made elsewhere, mirroring the auth-state listener the
// single-page app observes.
package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// EventSignedIn is sent when a new session is established for the
	// subscribed user.
	EventSignedIn = "signed-in"
	// EventSignedOut is sent when the subscribed user's sessions are
	// revoked; clients should drop local auth state.
	EventSignedOut = "signed-out"
)

type Event struct {
	Type   string    `json:"type"`
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	mu         sync.Mutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 16),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, conns := range h.clients {
				for client := range conns {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				if h.clients[client.userID] == nil {
					h.clients[client.userID] = make(map[*Client]bool)
				}
				h.clients[client.userID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if conns, ok := h.clients[client.userID]; ok {
					if _, ok := conns[client]; ok {
						delete(conns, client)
						client.Close()
						if len(conns) == 0 {
							delete(h.clients, client.userID)
						}
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// Stop shuts down the hub and closes every client connection. It
// blocks until the run loop has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// NotifySignedIn publishes a signed-in event to the user's subscribers.
func (h *Hub) NotifySignedIn(userID uuid.UUID) {
	h.publish(Event{Type: EventSignedIn, UserID: userID.String(), At: time.Now()})
}

// NotifySignedOut publishes a signed-out event to the user's
// subscribers.
func (h *Hub) NotifySignedOut(userID uuid.UUID) {
	h.publish(Event{Type: EventSignedOut, UserID: userID.String(), At: time.Now()})
}

func (h *Hub) publish(event Event) {
	select {
	case h.events <- event:
	case <-h.done:
	}
}

func (h *Hub) deliver(event Event) {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[userID] {
		if !client.Send(event) {
			h.log.Warn("dropping slow session-event subscriber",
				zap.String("userId", event.UserID))
			delete(h.clients[userID], client)
			client.Close()
		}
	}
}
