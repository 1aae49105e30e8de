package domain

import (
	"reflect"
	"testing"
)

func sampleTables() []Table {
	return []Table{
		{Number: 3, Capacity: 4, Active: true},
		{Number: 1, Capacity: 2, Active: false},
		{Number: 7, Capacity: 6, Active: true},
	}
}

func TestAverageCapacity(t *testing.T) {
	cases := []struct {
		name     string
		tables   []Table
		expected float64
	}{
		{name: "empty", tables: nil, expected: 0},
		{name: "exact", tables: sampleTables(), expected: 4},
		{name: "rounded", tables: []Table{{Capacity: 2}, {Capacity: 2}, {Capacity: 3}}, expected: 2.3},
		{name: "round half up", tables: []Table{{Capacity: 2}, {Capacity: 2}, {Capacity: 2}, {Capacity: 3}}, expected: 2.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AverageCapacity(tc.tables); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleTables())
	expected := Summary{Total: 3, Active: 2, Inactive: 1, AverageCapacity: 4}
	if summary != expected {
		t.Fatalf("expected %+v, got %+v", expected, summary)
	}
}

func TestApplyWithoutFilterIsIdentity(t *testing.T) {
	tables := sampleTables()
	got := Apply(tables, FilterAll, 0)
	if !reflect.DeepEqual(got, tables) {
		t.Fatalf("expected unchanged list, got %+v", got)
	}
}

func TestApplyFilters(t *testing.T) {
	cases := []struct {
		name        string
		filter      Filter
		minCapacity int
		expected    []int
	}{
		{name: "active", filter: FilterActive, expected: []int{3, 7}},
		{name: "inactive", filter: FilterInactive, expected: []int{1}},
		{name: "capacity", filter: FilterAll, minCapacity: 4, expected: []int{3, 7}},
		{name: "active and capacity", filter: FilterActive, minCapacity: 5, expected: []int{7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(sampleTables(), tc.filter, tc.minCapacity)
			numbers := make([]int, 0, len(got))
			for _, table := range got {
				numbers = append(numbers, table.Number)
			}
			if !reflect.DeepEqual(numbers, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, numbers)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{"": FilterAll, "ACTIVE": FilterActive, "inactivas": FilterInactive, "false": FilterInactive, "weird": FilterAll}
	for raw, expected := range cases {
		if got := ParseFilter(raw); got != expected {
			t.Fatalf("ParseFilter(%q) expected %q got %q", raw, expected, got)
		}
	}
	if FilterAll.ActiveParam() != nil {
		t.Fatalf("all must not send an active param")
	}
	if param := FilterInactive.ActiveParam(); param == nil || *param {
		t.Fatalf("inactive must send active=false")
	}
}

func TestDuplicate(t *testing.T) {
	source := Table{Number: 3, Capacity: 4, Location: "Salón", Active: false}
	input := Duplicate(source, sampleTables())
	expected := TableInput{Number: 8, Capacity: 4, Location: "Salón", Active: true}
	if input != expected {
		t.Fatalf("expected %+v, got %+v", expected, input)
	}
	if NextTableNumber(nil) != 1 {
		t.Fatalf("expected 1 for empty set")
	}
}
