package domain

import (
	"fmt"
	"strings"
)

const DefaultRestaurantName = "El Buen Sazón"

type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type Footer struct {
	Title      string `json:"title"`
	About      string `json:"about"`
	QuickLinks []Link `json:"quick_links"`
	Social     []Link `json:"social"`
}

// Landing is the console's home screen and the chrome shared by every view.
type Landing struct {
	Brand        string   `json:"brand"`
	Headline     string   `json:"headline"`
	Taglines     []string `json:"taglines"`
	CallToAction Link     `json:"call_to_action"`
	Navigation   []Link   `json:"navigation"`
	Footer       Footer   `json:"footer"`
}

// Navigation lists the console sections in menu order.
func Navigation() []Link {
	return []Link{
		{Label: "INICIO", Path: "/"},
		{Label: "RESERVAR", Path: "/reservar"},
		{Label: "DASHBOARD", Path: "/dashboard"},
		{Label: "MESAS", Path: "/mesas"},
		{Label: "CLIENTES", Path: "/clientes"},
	}
}

func NewLanding(restaurantName string) Landing {
	name := strings.TrimSpace(restaurantName)
	if name == "" {
		name = DefaultRestaurantName
	}
	return Landing{
		Brand:    name,
		Headline: fmt.Sprintf("Bienvenido a %s", name),
		Taglines: []string{
			"Sabores auténticos, ambiente acogedor y servicio excepcional.",
			"Reserva tu mesa y vive la experiencia.",
		},
		CallToAction: Link{Label: "RESERVAR AHORA", Path: "/reservar"},
		Navigation:   Navigation(),
		Footer: Footer{
			Title:      name,
			About:      "Tu mejor opción para gestionar reservas de restaurantes.",
			QuickLinks: []Link{{Label: "Inicio", Path: "/"}, {Label: "Reservar", Path: "/reservar"}},
			Social: []Link{
				{Label: "Facebook", Path: "https://facebook.com"},
				{Label: "Instagram", Path: "https://instagram.com"},
				{Label: "WhatsApp", Path: "https://wa.me"},
			},
		},
	}
}
