package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ReservationStatus is the closed set of lifecycle states of a reservation.
type ReservationStatus string

const (
	ReservationStatusUnknown   ReservationStatus = ""
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

var (
	ErrTransitionNotAllowed = errors.New("reservation state transition not allowed")
	ErrConfirmationRequired = errors.New("action requires explicit confirmation")
)

var statusAliases = map[string]ReservationStatus{
	"pending":    ReservationStatusPending,
	"pendiente":  ReservationStatusPending,
	"confirmed":  ReservationStatusConfirmed,
	"confirmada": ReservationStatusConfirmed,
	"cancelled":  ReservationStatusCancelled,
	"canceled":   ReservationStatusCancelled,
	"cancelada":  ReservationStatusCancelled,
	"completed":  ReservationStatusCompleted,
	"completada": ReservationStatusCompleted,
}

// transitions lists the states reachable from each state. Cancelled and
// completed are terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted},
	ReservationStatusConfirmed: {ReservationStatusCancelled, ReservationStatusCompleted},
}

// NormalizeReservationStatus maps wire values onto the closed enum. Anything
// outside it becomes ReservationStatusUnknown.
func NormalizeReservationStatus(value any) ReservationStatus {
	s, ok := value.(string)
	if !ok {
		return ReservationStatusUnknown
	}
	if status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return status
	}
	return ReservationStatusUnknown
}

// IsActive reports whether the reservation still holds its table.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCompleted
}

func (s ReservationStatus) CanTransition(to ReservationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns the new state.
func (s ReservationStatus) Transition(to ReservationStatus) (ReservationStatus, error) {
	if !s.CanTransition(to) {
		from := string(s)
		if from == "" {
			from = "unknown"
		}
		return s, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
	}
	return to, nil
}

// Action is a state change the dashboard can offer for a reservation.
type Action string

const (
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Target is the state an action moves a reservation into.
func (a Action) Target() ReservationStatus {
	switch a {
	case ActionComplete:
		return ReservationStatusCompleted
	case ActionCancel:
		return ReservationStatusCancelled
	default:
		return ReservationStatusUnknown
	}
}

// RequiresConfirmation marks actions the user must confirm explicitly.
func (a Action) RequiresConfirmation() bool {
	return a == ActionCancel
}

// AvailableActions derives the dashboard actions from the transition table.
func (s ReservationStatus) AvailableActions() []Action {
	actions := make([]Action, 0, 2)
	for _, action := range []Action{ActionComplete, ActionCancel} {
		if s.CanTransition(action.Target()) {
			actions = append(actions, action)
		}
	}
	return actions
}
