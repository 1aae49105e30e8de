package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	reservations "mesaYaConsole/internal/modules/reservations/domain"
	tables "mesaYaConsole/internal/modules/tables/domain"
)

const (
	FirstHour         = 8
	LastHour          = 23
	CalendarDays      = 7
	CalendarDayLimit  = 3
	DateLayout        = "2006-01-02"
	NoReservationsMsg = "No hay reservas para este día"
)

var ErrInvalidDate = errors.New("invalid dashboard date")

var weekdayLabels = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

// Stats are the four headline cards plus the counts they derive from.
type Stats struct {
	TodayCount       int     `json:"today_count"`
	CancelledToday   int     `json:"cancelled_today"`
	Occupied         int     `json:"occupied"`
	ActiveTables     int     `json:"active_tables"`
	AvailableTables  int     `json:"available_tables"`
	OccupancyPercent float64 `json:"occupancy_percent"`
	AverageCapacity  float64 `json:"average_capacity"`
}

type PieSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type HourBucket struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type CalendarEntry struct {
	ReservationID int64                          `json:"reservation_id"`
	Time          string                         `json:"time"`
	TableNumber   int                            `json:"table_number"`
	State         reservations.ReservationStatus `json:"state"`
}

// CalendarDay shows at most CalendarDayLimit entries; Overflow counts the rest.
type CalendarDay struct {
	Date     string          `json:"date"`
	Weekday  string          `json:"weekday"`
	Label    string          `json:"label"`
	Entries  []CalendarEntry `json:"entries"`
	Overflow int             `json:"overflow"`
}

// Row is one line of the "Reservas del Día" table.
type Row struct {
	Reservation  reservations.Reservation `json:"reservation"`
	Time         string                   `json:"time"`
	CustomerName string                   `json:"customer_name"`
	Actions      []reservations.Action    `json:"actions"`
}

// Overview is the whole dashboard view model for one selected date.
type Overview struct {
	Date         string        `json:"date"`
	Stats        Stats         `json:"stats"`
	Pie          []PieSlice    `json:"pie"`
	Hours        []HourBucket  `json:"hours"`
	Calendar     []CalendarDay `json:"calendar"`
	Reservations []Row         `json:"reservations"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

// Input is the joined result of the dashboard fan-out.
type Input struct {
	Date     time.Time
	All      []reservations.Reservation
	Day      []reservations.Reservation
	Tables   []tables.Table
	Location *time.Location
}

// ParseDate reads a YYYY-MM-DD date as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

// Build computes the dashboard. Day drives the stats, histogram and table;
// All drives the calendar.
func Build(in Input) Overview {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	stats := ComputeStats(in.Day, in.Tables)
	overview := Overview{
		Date:         in.Date.Format(DateLayout),
		Stats:        stats,
		Pie:          Pie(stats),
		Hours:        Histogram(in.Day, loc),
		Calendar:     Calendar(in.All, in.Date, loc),
		Reservations: Rows(in.Day, loc),
	}
	if len(in.Day) == 0 {
		overview.EmptyMessage = NoReservationsMsg
	}
	return overview
}

// ComputeStats derives the headline numbers. Occupancy is 0 with no active tables.
func ComputeStats(day []reservations.Reservation, all []tables.Table) Stats {
	stats := Stats{TodayCount: len(day)}
	for _, reservation := range day {
		if reservation.State == reservations.ReservationStatusCancelled {
			stats.CancelledToday++
		} else {
			stats.Occupied++
		}
	}
	stats.ActiveTables = len(tables.ActiveTables(all))
	stats.AvailableTables = max(stats.ActiveTables-stats.Occupied, 0)
	if stats.ActiveTables > 0 {
		stats.OccupancyPercent = tables.RoundOne(float64(stats.Occupied) / float64(stats.ActiveTables) * 100)
	}
	stats.AverageCapacity = tables.AverageCapacity(all)
	return stats
}

func Pie(stats Stats) []PieSlice {
	return []PieSlice{
		{Name: "Ocupadas", Value: stats.Occupied},
		{Name: "Disponibles", Value: stats.AvailableTables},
	}
}

// Histogram counts reservations per hour of day from FirstHour to LastHour.
// Unparseable date-times are skipped.
func Histogram(day []reservations.Reservation, loc *time.Location) []HourBucket {
	buckets := make([]HourBucket, 0, LastHour-FirstHour+1)
	for hour := FirstHour; hour <= LastHour; hour++ {
		buckets = append(buckets, HourBucket{Hour: hour, Label: fmt.Sprintf("%d:00", hour)})
	}
	for _, reservation := range day {
		at, ok := reservations.ParseDateTime(reservation.DateTime, loc)
		if !ok {
			continue
		}
		if hour := at.Hour(); hour >= FirstHour && hour <= LastHour {
			buckets[hour-FirstHour].Count++
		}
	}
	return buckets
}

// WeekStart is the Sunday on or before date.
func WeekStart(date time.Time) time.Time {
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// Calendar groups every reservation into the Sunday-start week containing
// date, keeping list order within a day.
func Calendar(all []reservations.Reservation, date time.Time, loc *time.Location) []CalendarDay {
	start := WeekStart(date.In(loc))
	days := make([]CalendarDay, CalendarDays)
	index := make(map[string]int, CalendarDays)
	for i := range days {
		day := start.AddDate(0, 0, i)
		key := day.Format(DateLayout)
		days[i] = CalendarDay{
			Date:    key,
			Weekday: weekdayLabels[day.Weekday()],
			Label:   day.Format("02/01"),
			Entries: []CalendarEntry{},
		}
		index[key] = i
	}
	for _, reservation := range all {
		at, ok := reservations.ParseDateTime(reservation.DateTime, loc)
		if !ok {
			continue
		}
		i, ok := index[at.Format(DateLayout)]
		if !ok {
			continue
		}
		if len(days[i].Entries) >= CalendarDayLimit {
			days[i].Overflow++
			continue
		}
		days[i].Entries = append(days[i].Entries, CalendarEntry{
			ReservationID: reservation.ID,
			Time:          at.Format("15:04"),
			TableNumber:   reservation.TableNumber,
			State:         reservation.State,
		})
	}
	return days
}

// Rows lists the day's reservations in backend order with the actions their state allows.
func Rows(day []reservations.Reservation, loc *time.Location) []Row {
	rows := make([]Row, 0, len(day))
	for _, reservation := range day {
		row := Row{
			Reservation:  reservation,
			CustomerName: reservation.CustomerName(),
			Actions:      reservation.State.AvailableActions(),
		}
		if at, ok := reservations.ParseDateTime(reservation.DateTime, loc); ok {
			row.Time = at.Format("15:04")
		}
		if row.CustomerName == "" {
			row.CustomerName = fmt.Sprintf("Cliente %d", reservation.CustomerID)
		}
		rows = append(rows, row)
	}
	return rows
}
