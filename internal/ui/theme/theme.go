package theme

import "github.com/charmbracelet/lipgloss"

// Styles is one complete palette. The app swaps between Light and Dark
// at runtime and persists the choice through config.
type Styles struct {
	Name string

	Base    lipgloss.Color
	Mantle  lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Indigo  lipgloss.Color
	Teal    lipgloss.Color
	Rose    lipgloss.Color
	Amber   lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Danger     lipgloss.Style
	Badge      lipgloss.Style
	Highlight  lipgloss.Style
}

func Light() Styles {
	s := Styles{
		Name:    "light",
		Base:    lipgloss.Color("#ffffff"),
		Mantle:  lipgloss.Color("#f3f4f6"),
		Surface: lipgloss.Color("#e5e7eb"),
		Border:  lipgloss.Color("#d1d5db"),
		Text:    lipgloss.Color("#1f2937"),
		Subtext: lipgloss.Color("#6b7280"),
		Indigo:  lipgloss.Color("#4f46e5"),
		Teal:    lipgloss.Color("#0d9488"),
		Rose:    lipgloss.Color("#e11d48"),
		Amber:   lipgloss.Color("#d97706"),
	}
	return s.build()
}

func Dark() Styles {
	s := Styles{
		Name:    "dark",
		Base:    lipgloss.Color("#1f2937"),
		Mantle:  lipgloss.Color("#111827"),
		Surface: lipgloss.Color("#374151"),
		Border:  lipgloss.Color("#4b5563"),
		Text:    lipgloss.Color("#e5e7eb"),
		Subtext: lipgloss.Color("#9ca3af"),
		Indigo:  lipgloss.Color("#818cf8"),
		Teal:    lipgloss.Color("#2dd4bf"),
		Rose:    lipgloss.Color("#fb7185"),
		Amber:   lipgloss.Color("#fbbf24"),
	}
	return s.build()
}

func (s Styles) build() Styles {
	s.App = lipgloss.NewStyle().Background(s.Base).Foreground(s.Text)
	s.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(s.Border).
		Padding(1)
	s.PaneActive = s.Pane.BorderForeground(s.Indigo)
	s.Title = lipgloss.NewStyle().Foreground(s.Indigo).Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(s.Subtext)
	s.Hot = lipgloss.NewStyle().Foreground(s.Teal).Bold(true)
	s.Danger = lipgloss.NewStyle().Foreground(s.Rose).Bold(true)
	s.Badge = lipgloss.NewStyle().Foreground(s.Teal).Background(s.Mantle).Padding(0, 1)
	s.Highlight = lipgloss.NewStyle().Foreground(s.Amber).Bold(true)
	return s
}

// Current is the palette in use. Views read it at render time so a
// toggle takes effect on the next frame.
var Current = Light()

// Use selects the palette by config name; anything but "dark" is light.
func Use(name string) {
	if name == "dark" {
		Current = Dark()
	} else {
		Current = Light()
	}
}

// Toggle flips the palette and reports the new name.
func Toggle() string {
	if Current.Name == "dark" {
		Current = Light()
	} else {
		Current = Dark()
	}
	return Current.Name
}
