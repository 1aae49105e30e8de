package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mesaYaConsole/internal/shared/validation"
)

var ErrMalformedTime = errors.New("malformed time of day")

const (
	MinPartySize = 1
	MaxPartySize = 10
)

// CreateReservationBody is the POST /reservations payload.
type CreateReservationBody struct {
	DateTime    string `json:"date_time"`
	PartySize   int    `json:"party_size"`
	TableNumber int    `json:"table_number"`
	CustomerID  int64  `json:"customer_id"`
	Notes       string `json:"notes,omitempty"`
}

// ReservationPatch is the generic PATCH /reservations/{id} payload.
type ReservationPatch struct {
	DateTime    *string            `json:"date_time,omitempty"`
	PartySize   *int               `json:"party_size,omitempty"`
	State       *ReservationStatus `json:"state,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	TableNumber *int               `json:"table_number,omitempty"`
}

// StatePatch sets only the state.
func StatePatch(state ReservationStatus) ReservationPatch {
	return ReservationPatch{State: &state}
}

// BookingForm is what the Reservar screen submits.
type BookingForm struct {
	SubmissionID string `json:"submission_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PartySize    int    `json:"party_size"`
	Notes        string `json:"notes"`
	TableNumber  int    `json:"table_number"`
}

// Normalized trims every text field.
func (f BookingForm) Normalized() BookingForm {
	f.SubmissionID = strings.TrimSpace(f.SubmissionID)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}

// Validate applies the synchronous form rules and returns per-field messages.
// The time format is checked separately by NormalizeTime.
func (f BookingForm) Validate() error {
	fields := validation.FieldErrors{}
	if f.FirstName == "" {
		fields.Add("first_name", "El nombre es requerido")
	}
	if f.LastName == "" {
		fields.Add("last_name", "El apellido es requerido")
	}
	if f.Phone == "" {
		fields.Add("phone", "El teléfono es requerido")
	}
	if f.Date == "" {
		fields.Add("date", "La fecha es requerida")
	} else if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		fields.Add("date", "La fecha no es válida")
	}
	if f.Time == "" {
		fields.Add("time", "La hora es requerida")
	}
	if f.PartySize < MinPartySize || f.PartySize > MaxPartySize {
		fields.Add("party_size", "Seleccione el número de personas")
	}
	if f.TableNumber <= 0 {
		fields.Add("table_number", "Debe seleccionar una mesa válida")
	}
	return fields.Err()
}

// NormalizeTime turns "HH:MM" into "HH:MM:00" and keeps "HH:MM:SS". A value
// without any ":" is rejected with ErrMalformedTime.
func NormalizeTime(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if !strings.Contains(value, ":") {
		return "", fmt.Errorf("%w: %q has no hour:minute separator", ErrMalformedTime, raw)
	}
	parts := strings.Split(value, ":")
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf("%w: %q", ErrMalformedTime, raw)
		}
	}
	switch len(parts) {
	case 2:
		return value + ":00", nil
	case 3:
		return value, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrMalformedTime, raw)
	}
}

// CombineDateTime joins a date and a time of day as "<date>T<HH:MM:SS>".
func CombineDateTime(date, timeOfDay string) (string, error) {
	normalized, err := NormalizeTime(timeOfDay)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(date) + "T" + normalized, nil
}

// TimeSlots are the bookable times: every 30 minutes from 08:00 to 22:00.
func TimeSlots() []string {
	slots := make([]string, 0, 29)
	for minutes := 8 * 60; minutes <= 22*60; minutes += 30 {
		slots = append(slots, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return slots
}

// PartySizes lists the selectable party sizes.
func PartySizes() []int {
	sizes := make([]int, 0, MaxPartySize)
	for size := MinPartySize; size <= MaxPartySize; size++ {
		sizes = append(sizes, size)
	}
	return sizes
}
