package port

import (
	"context"

	"mesaYaConsole/internal/modules/realtime/domain"
)

// Broadcaster pushes messages to the connected console clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is registered per Kafka topic and handles its decoded messages.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
