package domain

import (
	"errors"
	"strings"
	"time"

	customers "mesaYaConsole/internal/modules/customers/domain"
	tables "mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/shared/normalization"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUnexpectedPayload   = errors.New("unexpected reservations payload")
)

// Reservation is a booking of one table for one customer at a date-time.
type Reservation struct {
	ID          int64               `json:"id"`
	DateTime    string              `json:"date_time"`
	PartySize   int                 `json:"party_size"`
	State       ReservationStatus   `json:"state"`
	Notes       string              `json:"notes,omitempty"`
	TableNumber int                 `json:"table_number"`
	CustomerID  int64               `json:"customer_id"`
	Table       *tables.Table       `json:"table,omitempty"`
	Customer    *customers.Customer `json:"customer,omitempty"`
}

// NormalizeReservation builds a Reservation from a decoded JSON object. A
// positive id is required; the embedded table and customer are optional and
// fill in the foreign keys when those are missing.
func NormalizeReservation(raw map[string]any) (Reservation, bool) {
	if raw == nil {
		return Reservation{}, false
	}
	id := normalization.AsInt64(raw["id"])
	if id <= 0 {
		return Reservation{}, false
	}

	reservation := Reservation{
		ID:          id,
		DateTime:    normalization.AsString(normalization.First(raw, "date_time", "fecha_hora")),
		PartySize:   normalization.AsInt(normalization.First(raw, "party_size", "numero_personas")),
		State:       NormalizeReservationStatus(normalization.First(raw, "state", "estado", "status")),
		Notes:       normalization.AsString(normalization.First(raw, "notes", "observaciones")),
		TableNumber: normalization.AsInt(normalization.First(raw, "table_number", "mesa_numero")),
		CustomerID:  normalization.AsInt64(normalization.First(raw, "customer_id", "cliente_id")),
	}

	if nested, ok := normalization.First(raw, "table", "mesa").(map[string]any); ok {
		if table, ok := tables.NormalizeTable(nested); ok {
			reservation.Table = &table
			if reservation.TableNumber == 0 {
				reservation.TableNumber = table.Number
			}
		}
	}
	if nested, ok := normalization.First(raw, "customer", "cliente").(map[string]any); ok {
		if customer, ok := customers.NormalizeCustomer(nested); ok {
			reservation.Customer = &customer
			if reservation.CustomerID == 0 {
				reservation.CustomerID = customer.ID
			}
		}
	}
	return reservation, true
}

// BuildReservationList projects a list payload (bare array or
// {"reservations": [...]}) into reservations, skipping invalid records.
func BuildReservationList(payload any) ([]Reservation, bool) {
	var rawItems []any
	switch typed := payload.(type) {
	case []any:
		rawItems = typed
	case map[string]any:
		container := normalization.MapFromPayload(typed)
		value := normalization.First(container, "items", "reservations")
		if value == nil {
			return nil, false
		}
		rawItems = normalization.AsInterfaceSlice(value)
	case nil:
		return []Reservation{}, true
	default:
		return nil, false
	}

	result := make([]Reservation, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if reservation, ok := NormalizeReservation(rawMap); ok {
				result = append(result, reservation)
			}
		}
	}
	return result, true
}

// BuildReservationDetail extracts a single reservation, unwrapping {"reservation": {...}}.
func BuildReservationDetail(payload any) (*Reservation, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	if nested, ok := container["reservation"].(map[string]any); ok {
		container = nested
	}
	reservation, ok := NormalizeReservation(container)
	if !ok {
		return nil, false
	}
	return &reservation, true
}

// CustomerName is "First Last" from the embedded customer, or "" when absent.
func (r Reservation) CustomerName() string {
	if r.Customer == nil {
		return ""
	}
	return r.Customer.FullName()
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.000",
}

// ParseDateTime reads the backend's date-time. Values without an offset are
// taken as wall-clock time in loc; values with one are converted into loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed.In(loc), true
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
