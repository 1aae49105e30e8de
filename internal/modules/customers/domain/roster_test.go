package domain

import "testing"

func TestMatchesPerField(t *testing.T) {
	carla := Customer{ID: 1, FirstName: "Carla", LastName: "Warnes", Email: "cw@mail.com", Phone: "0991234567"}
	other := Customer{ID: 2, FirstName: "Luis", LastName: "Paz", Email: "luis123@mail.com", Phone: "0987654321"}

	cases := []struct {
		name     string
		customer Customer
		query    string
		expected bool
	}{
		{name: "surname lowercase", customer: carla, query: "warnes", expected: true},
		{name: "surname on other", customer: other, query: "warnes", expected: false},
		{name: "full name across first and last", customer: carla, query: "la war", expected: true},
		{name: "email case-insensitive", customer: other, query: "LUIS123@", expected: true},
		{name: "phone raw substring", customer: carla, query: "12345", expected: true},
		{name: "no cross-field match", customer: carla, query: "cw@mail.com0991", expected: false},
		{name: "empty query", customer: other, query: "  ", expected: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.customer, tc.query); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestSearchKeepsOrder(t *testing.T) {
	customers := []Customer{
		{ID: 1, FirstName: "Ana", LastName: "Mora"},
		{ID: 2, FirstName: "Mora", LastName: "Ruiz"},
		{ID: 3, FirstName: "Pedro", LastName: "Vega"},
	}
	got := Search(customers, "mora")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected search result %+v", got)
	}
	if all := Search(customers, ""); len(all) != 3 {
		t.Fatalf("empty search must return all customers")
	}
}

func TestAnnotateFirstMatchWins(t *testing.T) {
	customers := []Customer{{ID: 1}, {ID: 2}, {ID: 3}}
	refs := []ReservationRef{
		{ID: 10, CustomerID: 2, State: "confirmed"},
		{ID: 11, CustomerID: 2, State: "pending"},
		{ID: 12, CustomerID: 3, State: "pending"},
	}
	entries := Annotate(customers, refs)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ActiveReservation != nil {
		t.Fatalf("customer 1 has no reservation")
	}
	if entries[1].ActiveReservation == nil || entries[1].ActiveReservation.ID != 10 {
		t.Fatalf("expected first reservation to win for customer 2, got %+v", entries[1].ActiveReservation)
	}
	if entries[2].ActiveReservation == nil || entries[2].ActiveReservation.ID != 12 {
		t.Fatalf("unexpected reservation for customer 3: %+v", entries[2].ActiveReservation)
	}
}
