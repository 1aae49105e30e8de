package infrastructure

import (
	"context"
	"log/slog"

	"mesaYaConsole/internal/modules/realtime/application/port"
	"mesaYaConsole/internal/modules/realtime/domain"
)

// HandlerRegistry dispatches consumed messages by their Kafka topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	if h == nil || h.Topic() == "" {
		return
	}
	r.handlers[h.Topic()] = h
}

// Topics lists the registered Kafka topics.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch routes msg by the Kafka topic it was read from. Unknown topics are ignored.
func (r *HandlerRegistry) Dispatch(ctx context.Context, kafkaTopic string, msg *domain.Message) error {
	handler, ok := r.handlers[kafkaTopic]
	if !ok {
		slog.Debug("no handler for topic", slog.String("topic", kafkaTopic))
		return nil
	}
	return handler.Handle(ctx, msg)
}
