package broker

import (
	"context"
	"log/slog"
	"sync"

	"mesaYaConsole/internal/modules/realtime/domain"
)

// Dispatcher routes a consumed message by the Kafka topic it came from.
type Dispatcher interface {
	Dispatch(ctx context.Context, topic string, msg *domain.Message) error
}

// StartKafkaConsumers starts one consumer per topic. The returned WaitGroup
// completes once every consumer has stopped after ctx is cancelled.
func StartKafkaConsumers(
	ctx context.Context,
	dispatcher Dispatcher,
	brokers []string,
	groupID string,
	topics []string,
) *sync.WaitGroup {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		// kafka.NewReader panics on an empty broker list.
		slog.Info("kafka disabled: no brokers configured")
		return &wg
	}
	for _, topic := range topics {
		consumer := NewKafkaConsumer(brokers, groupID, topic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			runConsumer(ctx, consumer, dispatcher)
		}()
	}
	slog.Info("kafka consumers started", slog.Any("brokers", brokers), slog.String("group", groupID), slog.Any("topics", topics))
	return &wg
}

func runConsumer(ctx context.Context, consumer *KafkaConsumer, dispatcher Dispatcher) {
	err := consumer.Consume(ctx, func(topic string, msg *domain.Message) error {
		return dispatcher.Dispatch(ctx, topic, msg)
	})
	slog.Info("kafka consumer stopped", slog.String("topic", consumer.topic), slog.Any("reason", err))
}
