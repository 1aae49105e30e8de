package domain

import (
	"strings"

	"mesaYaConsole/internal/shared/validation"
)

// TableInput is the create body: {number, capacity, location, active}.
type TableInput struct {
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

// Validate checks the form rules before any call is made.
func (in TableInput) Validate() error {
	fields := validation.FieldErrors{}
	if in.Number <= 0 {
		fields.Add("number", "El número de mesa debe ser mayor a 0")
	}
	if in.Capacity <= 0 {
		fields.Add("capacity", "La capacidad debe ser mayor a 0")
	}
	return fields.Err()
}

// Normalized trims free text.
func (in TableInput) Normalized() TableInput {
	in.Location = strings.TrimSpace(in.Location)
	return in
}

// TablePatch is a partial update. The number is immutable and never sent.
type TablePatch struct {
	Capacity *int    `json:"capacity,omitempty"`
	Location *string `json:"location,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Validate rejects an explicit non-positive capacity.
func (p TablePatch) Validate() error {
	fields := validation.FieldErrors{}
	if p.Capacity != nil && *p.Capacity <= 0 {
		fields.Add("capacity", "La capacidad debe ser mayor a 0")
	}
	return fields.Err()
}

// SetActive builds the patch used to toggle or deactivate a table.
func SetActive(active bool) TablePatch {
	return TablePatch{Active: &active}
}
