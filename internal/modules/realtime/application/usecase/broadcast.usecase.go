package usecase

import (
	"context"
	"log/slog"
	"time"

	"mesaYaConsole/internal/modules/realtime/application/port"
	"mesaYaConsole/internal/modules/realtime/domain"
	"mesaYaConsole/internal/shared/events"
	"mesaYaConsole/internal/shared/normalization"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b, now: time.Now}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = uc.now().UTC()
	}
	uc.broadcaster.Broadcast(ctx, msg)
}

// Notify turns a console mutation into a reload notice for the other open
// consoles.
func (uc *BroadcastUseCase) Notify(ctx context.Context, change events.Change) {
	entity := normalization.NormalizeEntity(change.Entity)
	topic := domain.Topic(entity, change.Action)
	if topic == "" {
		slog.Debug("realtime notify skipped", slog.String("entity", change.Entity), slog.String("action", change.Action))
		return
	}
	metadata := map[string]string{"source": "console"}
	if change.Actor != "" {
		metadata["actor"] = change.Actor
	}
	uc.Execute(ctx, &domain.Message{
		Topic:      topic,
		Entity:     entity,
		Action:     change.Action,
		ResourceID: change.ResourceID,
		Metadata:   metadata,
		Data:       map[string]any{"reload": domain.ReloadViews(entity)},
	})
}

var _ events.Notifier = (*BroadcastUseCase)(nil)
