package todos

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tododto "todohub/internal/modules/todos/dto"
	"todohub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TodoPort interface {
	Prime(ctx context.Context)
	FetchAll(ctx context.Context) (tododto.ListOutput, error)
	Add(ctx context.Context, title string) (tododto.TodoOutput, error)
	Update(ctx context.Context, input tododto.UpdateInput) (tododto.TodoOutput, error)
	Remove(ctx context.Context, id string) error
	Filtered(filter string) []tododto.TodoOutput
	Stats() tododto.StatsOutput
	ClearError()
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg settles a FetchAll. The app watches Err for an unauthenticated
// failure and redirects to login.
type LoadedMsg struct {
	Err error
}

// MutatedMsg settles an add/toggle/rename/remove.
type MutatedMsg struct {
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

var filterCycle = []string{"all", "active", "completed"}

type Model struct {
	port TodoPort

	input   textinput.Model
	spinner spinner.Model
	items   []tododto.TodoOutput
	filter  int
	cursor  int
	adding  bool
	loading bool
	errLine string
	width   int
	height  int
}

func New(port TodoPort) Model {
	input := textinput.New()
	input.Placeholder = "what needs doing?"
	input.Prompt = "+ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, input: input, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	port := m.port
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			// Last confirmed snapshot paints first; the fetch replaces it.
			port.Prime(context.Background())
			_, err := port.FetchAll(context.Background())
			return LoadedMsg{Err: err}
		},
	)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		} else {
			m.errLine = ""
		}
		m.refresh()

	case MutatedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		} else {
			m.errLine = ""
		}
		m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := m.input.Value()
		m.input.Reset()
		m.adding = false
		m.input.Blur()
		port := m.port
		return m, func() tea.Msg {
			_, err := port.Add(context.Background(), title)
			return MutatedMsg{Err: err}
		}
	case "esc":
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "a", "+":
		m.adding = true
		m.port.ClearError()
		m.errLine = ""
		return m, m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "f":
		m.filter = (m.filter + 1) % len(filterCycle)
		m.refresh()
	case " ", "enter":
		if item, ok := m.selected(); ok {
			port := m.port
			return m, func() tea.Msg {
				_, err := port.Update(context.Background(), tododto.UpdateInput{ID: item.ID, Title: item.Title, Completed: !item.Completed})
				return MutatedMsg{Err: err}
			}
		}
	case "d", "x":
		if item, ok := m.selected(); ok {
			port := m.port
			return m, func() tea.Msg {
				return MutatedMsg{Err: port.Remove(context.Background(), item.ID)}
			}
		}
	case "r":
		m.loading = true
		port := m.port
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			_, err := port.FetchAll(context.Background())
			return LoadedMsg{Err: err}
		})
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading && len(m.items) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading todos…")
	}

	var rows []string
	stats := m.port.Stats()
	header := fmt.Sprintf("Todos — %s (%d%% done)", filterCycle[m.filter], stats.Percent)
	rows = append(rows, theme.Title.Render(header), "")

	if len(m.items) == 0 {
		rows = append(rows, theme.Muted.Render("nothing here — press a to add"))
	}
	for i, item := range m.items {
		mark := "[ ]"
		line := item.Title
		if item.Completed {
			mark = "[x]"
			line = theme.Done.Render(line)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = theme.Title.Render("> ")
		}
		rows = append(rows, prefix+theme.Muted.Render(mark)+" "+line)
	}

	rows = append(rows, "")
	if m.adding {
		rows = append(rows, m.input.View())
	} else {
		rows = append(rows, theme.Muted.Render("a add · space toggle · d delete · f filter · r refresh"))
	}
	if m.errLine != "" {
		rows = append(rows, theme.Error.Render(m.errLine))
	}

	return theme.Pane.Width(max(m.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Summary feeds the app's status bar.
func (m Model) Summary() (done, total int) {
	stats := m.port.Stats()
	return stats.Completed, stats.Total
}

func (m *Model) refresh() {
	m.items = m.port.Filtered(filterCycle[m.filter])
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (tododto.TodoOutput, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return tododto.TodoOutput{}, false
	}
	return m.items[m.cursor], true
}
