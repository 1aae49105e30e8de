package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"mesaYaConsole/internal/modules/realtime/domain"
	"mesaYaConsole/internal/shared/normalization"
)

// Command is a client to server frame.
type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

type CommandHandler func(client *Client, cmd Command)

type CommandProcessor struct {
	hub      *Hub
	handlers map[string]CommandHandler
}

func NewCommandProcessor(hub *Hub) *CommandProcessor {
	processor := &CommandProcessor{
		hub:      hub,
		handlers: make(map[string]CommandHandler),
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := cmd.actionKey()
	if action == "" {
		return
	}
	handler, ok := p.handlers[action]
	if !ok {
		slog.Debug("ws command unsupported", slog.String("sessionId", client.sessionID), slog.String("action", action))
		sendError(client, action, "unsupported action")
		return
	}
	handler(client, cmd)
}

func (p *CommandProcessor) handleSubscribe(client *Client, cmd Command) {
	topic, ok := consoleTopic(cmd.Topic)
	if !ok {
		sendError(client, "subscribe", "unknown topic")
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(client *Client, cmd Command) {
	topic, ok := consoleTopic(cmd.Topic)
	if !ok {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(client *Client, _ Command) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	})
}

// consoleTopic canonicalizes "mesas" or "Reservation.Cancel" style topics.
// Only console entities can be subscribed to.
func consoleTopic(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	entity, action, _ := strings.Cut(raw, ".")
	if !normalization.IsValidEntity(entity) {
		return "", false
	}
	entity = normalization.NormalizeEntity(entity)
	if action = normalizeAction(action); action != "" {
		return domain.Topic(entity, action), true
	}
	return entity, true
}

func sendError(client *Client, action, reason string) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemError,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionError,
		Metadata:  map[string]string{"action": action, "reason": reason},
		Data:      map[string]string{"error": reason},
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
