package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Error = lipgloss.NewStyle().Foreground(Red)
	Done  = lipgloss.NewStyle().Foreground(Green)

	// Presence dots in the users roster.
	Online  = lipgloss.NewStyle().Foreground(Green)
	Offline = lipgloss.NewStyle().Foreground(Surface1)

	// Chat bubbles: own messages right-aligned in mauve, the counterpart's
	// left-aligned on a surface background.
	BubbleSelf = lipgloss.NewStyle().
			Background(Mauve).
			Foreground(Base).
			Padding(0, 1)

	BubblePeer = lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Text).
			Padding(0, 1)

	Badge = lipgloss.NewStyle().
		Background(Peach).
		Foreground(Base).
		Padding(0, 1).
		Bold(true)
)
