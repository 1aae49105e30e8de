package events

import "context"

// Change describes a mutation made through the console. Open consoles use it
// to know which views to reload.
type Change struct {
	Entity     string
	Action     string
	ResourceID string
	Actor      string
}

// Notifier fans a Change out to interested listeners. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, change Change)
}

// Nop discards every change.
type Nop struct{}

func (Nop) Notify(context.Context, Change) {}

// OrNop returns n, or Nop when n is nil.
func OrNop(n Notifier) Notifier {
	if n == nil {
		return Nop{}
	}
	return n
}
