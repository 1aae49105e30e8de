package normalization

import "strings"

// entityAliases maps the names used by the backend, Kafka topics and the
// Spanish console screens onto the canonical entity.
var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	"table":  "tables",
	"tables": "tables",
	"mesa":   "tables",
	"mesas":  "tables",

	"customer":  "customers",
	"customers": "customers",
	"cliente":   "customers",
	"clientes":  "customers",

	"reservation":  "reservations",
	"reservations": "reservations",
	"reserva":      "reservations",
	"reservas":     "reservations",
}

var validEntities = []string{"tables", "customers", "reservations"}

// NormalizeEntity lowercases raw, maps underscores to hyphens and resolves
// aliases. Unknown names come back normalized but otherwise unchanged.
//
//	NormalizeEntity("Mesa") => "tables"
//	NormalizeEntity("reservation") => "reservations"
func NormalizeEntity(raw string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	return normalized
}

// IsValidEntity reports whether raw names one of the console entities.
func IsValidEntity(raw string) bool {
	normalized := NormalizeEntity(raw)
	for _, entity := range validEntities {
		if entity == normalized {
			return true
		}
	}
	return false
}

// GetAllValidEntities returns the canonical entity names.
func GetAllValidEntities() []string {
	return append([]string(nil), validEntities...)
}
