package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mesaYaConsole/internal/shared/normalization"
	"mesaYaConsole/internal/shared/validation"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrUnexpectedPayload = errors.New("unexpected customers payload")
)

// Customer is a person who has reserved, or may reserve, a table.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	Active    bool   `json:"active"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizeCustomer requires a positive id and defaults the rest.
func NormalizeCustomer(raw map[string]any) (Customer, bool) {
	if raw == nil {
		return Customer{}, false
	}
	id := normalization.AsInt64(raw["id"])
	if id <= 0 {
		return Customer{}, false
	}
	return Customer{
		ID:        id,
		FirstName: normalization.AsString(normalization.First(raw, "first_name", "nombre")),
		LastName:  normalization.AsString(normalization.First(raw, "last_name", "apellido")),
		Email:     normalization.AsString(raw["email"]),
		Phone:     normalization.AsString(normalization.First(raw, "phone", "telefono")),
		Address:   normalization.AsString(normalization.First(raw, "address", "direccion")),
		Active:    normalization.AsBool(normalization.First(raw, "active", "activo"), true),
	}, true
}

func BuildCustomerList(payload any) ([]Customer, bool) {
	var rawItems []any
	switch typed := payload.(type) {
	case []any:
		rawItems = typed
	case map[string]any:
		container := normalization.MapFromPayload(typed)
		value := normalization.First(container, "items", "customers")
		if value == nil {
			return nil, false
		}
		rawItems = normalization.AsInterfaceSlice(value)
	case nil:
		return []Customer{}, true
	default:
		return nil, false
	}

	customers := make([]Customer, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if customer, ok := NormalizeCustomer(rawMap); ok {
				customers = append(customers, customer)
			}
		}
	}
	return customers, true
}

// BuildCustomerDetail extracts a single customer, unwrapping {"customer": {...}}.
func BuildCustomerDetail(payload any) (*Customer, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	if nested, ok := container["customer"].(map[string]any); ok {
		container = nested
	}
	customer, ok := NormalizeCustomer(container)
	if !ok {
		return nil, false
	}
	return &customer, true
}

// CustomerInput is the create body: {first_name, last_name, email, phone, address?, active}.
type CustomerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	Active    bool   `json:"active"`
}

func (in CustomerInput) Normalized() CustomerInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	return in
}

func (in CustomerInput) Validate() error {
	fields := validation.FieldErrors{}
	if in.FirstName == "" {
		fields.Add("first_name", "El nombre es requerido")
	}
	if in.LastName == "" {
		fields.Add("last_name", "El apellido es requerido")
	}
	if in.Phone == "" {
		fields.Add("phone", "El teléfono es requerido")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		fields.Add("email", "El email no es válido")
	}
	return fields.Err()
}

// CustomerPatch is a partial update of a customer.
type CustomerPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func (p CustomerPatch) Validate() error {
	fields := validation.FieldErrors{}
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		fields.Add("first_name", "El nombre es requerido")
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		fields.Add("last_name", "El apellido es requerido")
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) != "" && !strings.Contains(*p.Email, "@") {
		fields.Add("email", "El email no es válido")
	}
	return fields.Err()
}

// SyntheticEmail is the placeholder address given to walk-in customers who
// did not provide one. It is unique per millisecond.
func SyntheticEmail(now time.Time) string {
	return fmt.Sprintf("cliente_%d@restaurante.com", now.UnixMilli())
}
