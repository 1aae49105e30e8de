package handler

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaConsole/internal/modules/realtime/application/port"
	"mesaYaConsole/internal/modules/realtime/application/usecase"
	"mesaYaConsole/internal/modules/realtime/domain"
	"mesaYaConsole/internal/shared/normalization"
)

// EntityStreamHandler relays the change events of one Kafka topic to the
// console clients as reload notices. Actions outside allowedActions are dropped.
type EntityStreamHandler struct {
	entity         string
	kafkaTopic     string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
}

func NewEntityStreamHandler(entity, kafkaTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		entity:         normalization.NormalizeEntity(entity),
		kafkaTopic:     strings.TrimSpace(kafkaTopic),
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.kafkaTopic }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	action := strings.ToLower(strings.TrimSpace(msg.Action))
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[action]; !ok {
			slog.Debug("entity-stream action filtered", slog.String("topic", h.kafkaTopic), slog.String("action", action))
			return nil
		}
	}

	// The configured entity wins: backend events name it inconsistently.
	entity := h.entity
	if entity == "" {
		entity = normalization.NormalizeEntity(msg.Entity)
	}
	msg.Entity = entity
	msg.Action = action
	msg.Topic = domain.Topic(entity, action)
	if msg.Topic == "" {
		return nil
	}
	if msg.Metadata == nil {
		msg.Metadata = make(map[string]string, 1)
	}
	msg.Metadata["source"] = "backend"
	if msg.Data == nil {
		msg.Data = map[string]any{"reload": domain.ReloadViews(entity)}
	}

	slog.Info("entity-stream relay", slog.String("entity", entity), slog.String("action", action), slog.String("resourceId", msg.ResourceID))
	h.broadcastUC.Execute(ctx, msg)
	return nil
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
