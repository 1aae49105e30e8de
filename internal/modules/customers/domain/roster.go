package domain

import "strings"

// Matches applies the roster search to one customer. Each field is matched
// on its own: the full name and the email case-insensitively, the phone as a
// raw substring. An empty query matches everyone.
func Matches(customer Customer, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	lowered := strings.ToLower(query)
	if strings.Contains(strings.ToLower(customer.FirstName+" "+customer.LastName), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(customer.Email), lowered) {
		return true
	}
	return strings.Contains(customer.Phone, query)
}

// Search filters locally, keeping the input order.
func Search(customers []Customer, query string) []Customer {
	if strings.TrimSpace(query) == "" {
		return customers
	}
	out := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		if Matches(customer, query) {
			out = append(out, customer)
		}
	}
	return out
}

// ReservationRef is the slice of a reservation the roster shows.
type ReservationRef struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customer_id"`
	DateTime    string `json:"date_time"`
	State       string `json:"state"`
	TableNumber int    `json:"table_number"`
	PartySize   int    `json:"party_size"`
}

// RosterEntry is one customer row with at most one active reservation for today.
type RosterEntry struct {
	Customer          Customer        `json:"customer"`
	ActiveReservation *ReservationRef `json:"active_reservation,omitempty"`
}

// Annotate joins customers with today's active reservations by customer id.
// When a customer has several, the first one in list order wins; the backend
// guarantees no order, so the pick is effectively arbitrary.
func Annotate(customers []Customer, active []ReservationRef) []RosterEntry {
	firstByCustomer := make(map[int64]ReservationRef, len(active))
	for _, ref := range active {
		if _, seen := firstByCustomer[ref.CustomerID]; !seen {
			firstByCustomer[ref.CustomerID] = ref
		}
	}
	entries := make([]RosterEntry, 0, len(customers))
	for _, customer := range customers {
		entry := RosterEntry{Customer: customer}
		if ref, ok := firstByCustomer[customer.ID]; ok {
			entry.ActiveReservation = &ref
		}
		entries = append(entries, entry)
	}
	return entries
}
