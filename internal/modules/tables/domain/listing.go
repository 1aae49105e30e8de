package domain

import (
	"math"
	"strings"
)

// Filter selects tables by their active flag.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterInactive Filter = "inactive"
)

// ParseFilter maps query values (including the Spanish labels used by the
// console) to a Filter. Unknown values mean "all".
func ParseFilter(raw string) Filter {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "activas", "true":
		return FilterActive
	case "inactive", "inactivas", "false":
		return FilterInactive
	default:
		return FilterAll
	}
}

// ActiveParam is the value of the backend "active" query parameter, or nil for all.
func (f Filter) ActiveParam() *bool {
	switch f {
	case FilterActive:
		active := true
		return &active
	case FilterInactive:
		active := false
		return &active
	default:
		return nil
	}
}

// Summary is computed over the loaded set, before the capacity filter.
type Summary struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Inactive        int     `json:"inactive"`
	AverageCapacity float64 `json:"average_capacity"`
}

func Summarize(tables []Table) Summary {
	summary := Summary{Total: len(tables)}
	for _, table := range tables {
		if table.Active {
			summary.Active++
		} else {
			summary.Inactive++
		}
	}
	summary.AverageCapacity = AverageCapacity(tables)
	return summary
}

// AverageCapacity is the mean capacity rounded to one decimal, 0 for no tables.
func AverageCapacity(tables []Table) float64 {
	if len(tables) == 0 {
		return 0
	}
	total := 0
	for _, table := range tables {
		total += table.Capacity
	}
	return RoundOne(float64(total) / float64(len(tables)))
}

// RoundOne rounds half away from zero to one decimal place.
func RoundOne(value float64) float64 {
	return math.Round(value*10) / 10
}

// Apply filters tables locally. FilterAll with minCapacity <= 0 returns the
// input unchanged, in order.
func Apply(tables []Table, filter Filter, minCapacity int) []Table {
	if filter == FilterAll && minCapacity <= 0 {
		return tables
	}
	out := make([]Table, 0, len(tables))
	for _, table := range tables {
		switch filter {
		case FilterActive:
			if !table.Active {
				continue
			}
		case FilterInactive:
			if table.Active {
				continue
			}
		}
		if minCapacity > 0 && table.Capacity < minCapacity {
			continue
		}
		out = append(out, table)
	}
	return out
}

// ActiveTables keeps tables whose active flag is set.
func ActiveTables(tables []Table) []Table {
	return Apply(tables, FilterActive, 0)
}

// NextTableNumber is one more than the highest number in the loaded set.
// It does not consult the backend, so it can collide with tables outside the set.
func NextTableNumber(tables []Table) int {
	highest := 0
	for _, table := range tables {
		if table.Number > highest {
			highest = table.Number
		}
	}
	return highest + 1
}

// Duplicate copies capacity and location into a new active table numbered after the loaded set.
func Duplicate(source Table, loaded []Table) TableInput {
	return TableInput{
		Number:   NextTableNumber(loaded),
		Capacity: source.Capacity,
		Location: source.Location,
		Active:   true,
	}
}

// FindByNumber looks a table up in an already loaded list.
func FindByNumber(tables []Table, number int) (Table, bool) {
	for _, table := range tables {
		if table.Number == number {
			return table, true
		}
	}
	return Table{}, false
}
