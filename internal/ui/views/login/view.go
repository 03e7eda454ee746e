package login

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "todohub/internal/modules/auth/dto"
	"todohub/internal/modules/auth/service"
	"todohub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AuthPort interface {
	Login(ctx context.Context, email, password string) (authdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SubmittedMsg settles a login attempt. The app model re-reads the session
// snapshot on it and re-evaluates the route guard.
type SubmittedMsg struct {
	Err error
}

// GoRegisterMsg asks the app to switch to the register form.
type GoRegisterMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

type Model struct {
	port AuthPort

	inputs     [fieldCount]textinput.Model
	focused    int
	fieldErrs  service.FieldErrors
	serverErr  string
	submitting bool
	width      int
}

func New(port AuthPort) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{port: port, inputs: [fieldCount]textinput.Model{email, password}}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case SubmittedMsg:
		m.submitting = false
		if msg.Err != nil {
			var fieldErrs service.FieldErrors
			if errors.As(msg.Err, &fieldErrs) {
				m.fieldErrs = fieldErrs
			} else {
				m.serverErr = msg.Err.Error()
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focused = (m.focused + 1) % fieldCount
			for i := range m.inputs {
				if i == m.focused {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil
		case "enter":
			return m.submit()
		case "ctrl+r":
			return m, func() tea.Msg { return GoRegisterMsg{} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	// Stale feedback is cleared before every attempt.
	m.fieldErrs = nil
	m.serverErr = ""
	m.submitting = true
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()
	port := m.port
	return m, func() tea.Msg {
		_, err := port.Login(context.Background(), email, password)
		return SubmittedMsg{Err: err}
	}
}

func (m Model) View() string {
	var rows []string
	rows = append(rows, theme.Title.Render("Sign in"), "")

	labels := [fieldCount]string{"email", "password"}
	for i, input := range m.inputs {
		rows = append(rows, theme.Muted.Render(labels[i]))
		rows = append(rows, input.View())
		if msg, ok := m.fieldErrs[labels[i]]; ok {
			rows = append(rows, theme.Error.Render("  "+msg))
		}
		rows = append(rows, "")
	}

	if m.serverErr != "" {
		rows = append(rows, theme.Error.Render(m.serverErr), "")
	}
	if m.submitting {
		rows = append(rows, theme.Muted.Render("signing in…"))
	} else {
		rows = append(rows, theme.Muted.Render("enter to sign in · ctrl+r to register"))
	}

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return theme.Pane.Width(min(m.width-4, 48)).Render(form)
}
