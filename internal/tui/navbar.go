package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Destination is one entry of the navigation bar.
type Destination struct {
	Label string
	Path  string
}

var destinations = []Destination{
	{Label: "Inicio", Path: "/dashboard"},
	{Label: "Tareas", Path: "/tasks"},
	{Label: "Portafolio", Path: "/portfolio"},
	{Label: "Usuarios", Path: "/users"},
}

// usersScreen is the index of the user management destination.
const usersScreen = 3

// Destinations returns the fixed navigation entries in display order.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

func renderNavbar(active, width int) string {
	items := make([]string, 0, len(destinations))
	for i, d := range destinations {
		label := d.Label
		if i == active {
			items = append(items, navActiveStyle.Render(label))
		} else {
			items = append(items, navItemStyle.Render(label))
		}
	}
	brand := brandStyle.Render("TecnoAcademia Magdalena")
	links := strings.Join(items, " ")
	gap := width - lipgloss.Width(brand) - lipgloss.Width(links)
	if gap < 2 {
		gap = 2
	}
	return brand + strings.Repeat(" ", gap) + links
}
