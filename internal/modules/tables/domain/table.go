package domain

import (
	"errors"
	"time"

	"mesaYaConsole/internal/shared/normalization"
)

var (
	ErrTableNotFound      = errors.New("table not found")
	ErrUnexpectedPayload  = errors.New("unexpected tables payload")
	ErrDeleteNotConfirmed = errors.New("table deletion requires confirmation")
)

// Table is a physical seating unit, identified by its number.
type Table struct {
	Number    int        `json:"number"`
	Capacity  int        `json:"capacity"`
	Location  string     `json:"location"`
	Active    bool       `json:"active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NormalizeTable builds a Table from a decoded JSON object. Records without
// a positive number are rejected; every other field is defaulted.
func NormalizeTable(raw map[string]any) (Table, bool) {
	if raw == nil {
		return Table{}, false
	}
	number := normalization.AsInt(normalization.First(raw, "number", "numero"))
	if number <= 0 {
		return Table{}, false
	}
	return Table{
		Number:    number,
		Capacity:  normalization.AsInt(normalization.First(raw, "capacity", "capacidad")),
		Location:  normalization.AsString(normalization.First(raw, "location", "ubicacion")),
		Active:    normalization.AsBool(normalization.First(raw, "active", "activa"), true),
		CreatedAt: parseTimestamp(raw["created_at"]),
		UpdatedAt: parseTimestamp(raw["updated_at"]),
	}, true
}

// BuildTableList projects a list payload (bare array or {"tables": [...]})
// into tables, skipping records that fail NormalizeTable.
func BuildTableList(payload any) ([]Table, bool) {
	var rawItems []any
	switch typed := payload.(type) {
	case []any:
		rawItems = typed
	case map[string]any:
		container := normalization.MapFromPayload(typed)
		value := normalization.First(container, "items", "tables")
		if value == nil {
			return nil, false
		}
		rawItems = normalization.AsInterfaceSlice(value)
	case nil:
		return []Table{}, true
	default:
		return nil, false
	}

	tables := make([]Table, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if table, ok := NormalizeTable(rawMap); ok {
				tables = append(tables, table)
			}
		}
	}
	return tables, true
}

// BuildTableDetail extracts a single table, unwrapping {"table": {...}}.
func BuildTableDetail(payload any) (*Table, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	if nested, ok := container["table"].(map[string]any); ok {
		container = nested
	}
	table, ok := NormalizeTable(container)
	if !ok {
		return nil, false
	}
	return &table, true
}

func parseTimestamp(value any) *time.Time {
	raw := normalization.AsString(value)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &parsed
}
