package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"mesaYaConsole/internal/modules/realtime/domain"
)

// ConnectionObserver is told when console clients come and go (metrics).
type ConnectionObserver interface {
	ClientConnected()
	ClientDisconnected()
}

// Hub routes messages to clients subscribed either to the exact topic
// ("tables.updated") or to its entity ("tables"). Global clients get everything.
type Hub struct {
	topics   map[string]map[*Client]struct{}
	clients  map[string]*Client
	global   map[*Client]struct{}
	observer ConnectionObserver
	mu       sync.RWMutex
}

func NewHub(observer ConnectionObserver) *Hub {
	return &Hub{
		topics:   make(map[string]map[*Client]struct{}),
		clients:  make(map[string]*Client),
		global:   make(map[*Client]struct{}),
		observer: observer,
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.clients[c.key()]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.key()] = c
	if h.observer != nil {
		h.observer.ClientConnected()
	}
	slog.Info("ws client registered", slog.String("actor", c.actor), slog.String("sessionId", c.sessionID))
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.subscribed, topic)
	slog.Debug("ws client unsubscribed", slog.String("actor", c.actor), slog.String("sessionId", c.sessionID), slog.String("topic", topic))
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	delete(h.global, c)
	// Only the registered instance counts as connected; a replaced client
	// may be detached again by its own read pump.
	if current, ok := h.clients[c.key()]; ok && current == c {
		delete(h.clients, c.key())
		if h.observer != nil {
			h.observer.ClientDisconnected()
		}
		slog.Info("ws client detached", slog.String("actor", c.actor), slog.String("sessionId", c.sessionID))
	}
	c.close()
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	seen := make(map[*Client]struct{})
	clients := make([]*Client, 0, len(h.global))
	collect := func(set map[*Client]struct{}) {
		for c := range set {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			clients = append(clients, c)
		}
	}
	collect(h.topics[msg.Topic])
	if entity := domain.EntityOf(msg.Topic); entity != msg.Topic {
		collect(h.topics[entity])
	}
	collect(h.global)
	h.mu.RUnlock()

	targetSession := ""
	if msg.Metadata != nil {
		targetSession = strings.TrimSpace(msg.Metadata["sessionId"])
	}

	for _, c := range clients {
		if targetSession != "" && c.sessionID != targetSession {
			continue
		}
		if !c.enqueue(data) {
			slog.Warn("ws client too slow, detaching", slog.String("actor", c.actor), slog.String("sessionId", c.sessionID))
			go h.detachClient(c)
		}
	}
}

// AttachClient registers c and subscribes it to topics. Entries may be whole
// entities ("reservations") or single topics ("reservations.cancel").
func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
		}
	}
	slog.Info("ws client attached", slog.String("actor", c.actor), slog.String("sessionId", c.sessionID), slog.Any("topics", topics))
}

// AttachClientToAll registers the client as a global subscriber receiving every broadcasted message.
func (h *Hub) AttachClientToAll(c *Client) {
	h.registerClient(c)
	h.mu.Lock()
	h.global[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("ws client attached to all topics", slog.String("actor", c.actor), slog.String("sessionId", c.sessionID))
}
