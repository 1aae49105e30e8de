package domain

import (
	tables "mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/shared/normalization"
)

// Availability pairs a table snapshot with whether it is free for a queried
// date and time. It is derived by the backend on every query.
type Availability struct {
	Table               tables.Table `json:"table"`
	Available           bool         `json:"available"`
	ExistingReservation *Reservation `json:"existingReservation,omitempty"`
}

// NormalizeAvailability requires a table with a number. A missing
// "available" flag is read as not available.
func NormalizeAvailability(raw map[string]any) (Availability, bool) {
	nested, ok := normalization.First(raw, "table", "mesa").(map[string]any)
	if !ok {
		return Availability{}, false
	}
	table, ok := tables.NormalizeTable(nested)
	if !ok {
		return Availability{}, false
	}
	record := Availability{
		Table:     table,
		Available: normalization.AsBool(normalization.First(raw, "available", "disponible"), false),
	}
	if existing, ok := normalization.First(raw, "existingReservation", "reservaExistente").(map[string]any); ok {
		if reservation, ok := NormalizeReservation(existing); ok {
			record.ExistingReservation = &reservation
		}
	}
	return record, true
}

func BuildAvailabilityList(payload any) ([]Availability, bool) {
	var rawItems []any
	switch typed := payload.(type) {
	case []any:
		rawItems = typed
	case map[string]any:
		value := normalization.First(typed, "items", "availability")
		if value == nil {
			return nil, false
		}
		rawItems = normalization.AsInterfaceSlice(value)
	case nil:
		return []Availability{}, true
	default:
		return nil, false
	}

	records := make([]Availability, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if record, ok := NormalizeAvailability(rawMap); ok {
				records = append(records, record)
			}
		}
	}
	return records, true
}
