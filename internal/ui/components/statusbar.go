package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"todohub/internal/ui/theme"
)

// StatusBar is the one-line footer: identity on the left, transient status in
// the middle, progress summary on the right.
type StatusBar struct {
	width    int
	identity string
	status   string
	summary  string
}

func NewStatusBar() StatusBar {
	return StatusBar{status: "ready"}
}

func (s *StatusBar) SetWidth(w int)          { s.width = w }
func (s *StatusBar) SetIdentity(name string) { s.identity = name }
func (s *StatusBar) SetStatus(status string) { s.status = status }

func (s *StatusBar) SetSummary(done, total int) {
	if total == 0 {
		s.summary = ""
		return
	}
	s.summary = fmt.Sprintf("%d/%d done", done, total)
}

func (s StatusBar) View() string {
	left := theme.Title.Render(s.identity)
	if s.identity == "" {
		left = theme.Muted.Render("not signed in")
	}
	right := theme.Muted.Render(s.summary)
	mid := theme.Muted.Render(s.status)

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 4
	if gap < 2 {
		gap = 2
	}
	half := gap / 2
	bar := left + spaces(half) + mid + spaces(gap-half) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Padding(0, 2).Width(s.width).Render(bar)
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
