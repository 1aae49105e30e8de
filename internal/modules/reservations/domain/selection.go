package domain

import (
	"fmt"

	tables "mesaYaConsole/internal/modules/tables/domain"
)

// HintCode identifies why the table dropdown looks the way it does.
type HintCode string

const (
	HintNoTables          HintCode = "no_tables"
	HintNoCapacity        HintCode = "no_capacity"
	HintNoneAvailable     HintCode = "none_available"
	HintCapacityCount     HintCode = "capacity_count"
	HintAvailabilityCount HintCode = "availability_count"
)

type HintLevel string

const (
	HintLevelWarning HintLevel = "warning"
	HintLevelInfo    HintLevel = "info"
)

type Hint struct {
	Code    HintCode  `json:"code"`
	Level   HintLevel `json:"level"`
	Message string    `json:"message"`
}

// SelectionInput is the already fetched data the dropdown is computed from.
type SelectionInput struct {
	ActiveTables []tables.Table
	Availability []Availability
	// DateTimeSelected is true when both date and time were chosen and the
	// availability query answered, even with an empty list.
	DateTimeSelected bool
	PartySize        int
}

// Selection is the set of tables offered for booking plus the hints to show.
type Selection struct {
	Tables []tables.Table `json:"tables"`
	Hints  []Hint         `json:"hints"`
}

// SelectTables applies the booking dropdown rule. With a date and time
// selected only tables the availability query marked available are offered,
// so an empty answer offers none; otherwise all active tables are. Both branches then drop tables smaller
// than the party size.
func SelectTables(in SelectionInput) Selection {
	useAvailability := in.DateTimeSelected

	var candidates []tables.Table
	if useAvailability {
		candidates = make([]tables.Table, 0, len(in.Availability))
		for _, record := range in.Availability {
			if record.Available {
				candidates = append(candidates, record.Table)
			}
		}
	} else {
		candidates = in.ActiveTables
	}

	selection := Selection{Tables: fitting(candidates, in.PartySize), Hints: []Hint{}}

	if len(in.ActiveTables) == 0 {
		selection.Hints = append(selection.Hints, Hint{
			Code:    HintNoTables,
			Level:   HintLevelWarning,
			Message: `No hay mesas registradas. Por favor, cree mesas primero desde el menú "MESAS".`,
		})
	}

	if in.PartySize > 0 && len(in.ActiveTables) > 0 {
		withCapacity := len(fitting(in.ActiveTables, in.PartySize))
		if withCapacity == 0 {
			selection.Hints = append(selection.Hints, Hint{
				Code:    HintNoCapacity,
				Level:   HintLevelWarning,
				Message: fmt.Sprintf("No hay mesas con capacidad para %d personas", in.PartySize),
			})
		} else {
			selection.Hints = append(selection.Hints, Hint{
				Code:    HintCapacityCount,
				Level:   HintLevelInfo,
				Message: fmt.Sprintf("%d mesas con capacidad para %d personas", withCapacity, in.PartySize),
			})
		}
	}

	if useAvailability {
		available := len(selection.Tables)
		if available == 0 {
			selection.Hints = append(selection.Hints, Hint{
				Code:    HintNoneAvailable,
				Level:   HintLevelWarning,
				Message: "No hay mesas disponibles para esta fecha, hora y número de personas",
			})
		} else {
			target := "esta fecha y hora"
			if in.PartySize > 0 {
				target = fmt.Sprintf("%d personas", in.PartySize)
			}
			selection.Hints = append(selection.Hints, Hint{
				Code:    HintAvailabilityCount,
				Level:   HintLevelInfo,
				Message: fmt.Sprintf("%d mesas disponibles para %s", available, target),
			})
		}
	}

	return selection
}

func fitting(candidates []tables.Table, partySize int) []tables.Table {
	out := make([]tables.Table, 0, len(candidates))
	for _, table := range candidates {
		if partySize > 0 && table.Capacity < partySize {
			continue
		}
		out = append(out, table)
	}
	return out
}
