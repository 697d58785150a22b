// Package ui implements the interactive browse interface: the product
// listing with filter/sort/pagination, the product detail view with variant
// selection, and the cart/checkout pane. Styling is kept deliberately thin;
// the interesting parts live in the state packages this UI drives.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	brandOrange = lipgloss.Color("#FF4000")
	ink         = lipgloss.Color("#10151F")
	slate       = lipgloss.Color("#3E424A")
	mist        = lipgloss.Color("#6b7280")
	errorRed    = lipgloss.Color("#e53935")
)

// Styles holds the shared lipgloss styles for all pages.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Banner   lipgloss.Style
	PageCur  lipgloss.Style
	Swatch   lipgloss.Style
}

// NewStyles creates the default style set.
func NewStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(ink).Padding(0, 1),
		Footer:   lipgloss.NewStyle().Foreground(mist).Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ink),
		Body:     lipgloss.NewStyle().Foreground(slate),
		Muted:    lipgloss.NewStyle().Foreground(mist),
		Accent:   lipgloss.NewStyle().Foreground(brandOrange),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(brandOrange),
		Error:    lipgloss.NewStyle().Foreground(errorRed),
		Banner:   lipgloss.NewStyle().Foreground(errorRed).Padding(0, 1),
		PageCur:  lipgloss.NewStyle().Bold(true).Foreground(brandOrange),
		Swatch:   lipgloss.NewStyle(),
	}
}
