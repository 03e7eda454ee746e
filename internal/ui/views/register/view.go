package register

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

type AuthPort interface {
	Register(ctx context.Context, username, email, password string) (authdto.SessionOutput, error)
}

// SubmittedMsg settles a registration attempt.
type SubmittedMsg struct {
	Err error
}

// GoLoginMsg asks the app to switch back to the login form.
type GoLoginMsg struct{}

const (
	fieldUsername = iota
	fieldEmail
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
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "  "
	username.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "

	password := textinput.New()
	password.Placeholder = "password (6+ characters)"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{port: port, inputs: [fieldCount]textinput.Model{username, email, password}}
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
		case "tab", "down":
			return m.focus((m.focused + 1) % fieldCount), nil
		case "shift+tab", "up":
			return m.focus((m.focused + fieldCount - 1) % fieldCount), nil
		case "enter":
			return m.submit()
		case "ctrl+r", "esc":
			return m, func() tea.Msg { return GoLoginMsg{} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) focus(idx int) Model {
	m.focused = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	m.fieldErrs = nil
	m.serverErr = ""
	m.submitting = true
	username := m.inputs[fieldUsername].Value()
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()
	port := m.port
	return m, func() tea.Msg {
		_, err := port.Register(context.Background(), username, email, password)
		return SubmittedMsg{Err: err}
	}
}

func (m Model) View() string {
	var rows []string
	rows = append(rows, theme.Title.Render("Create account"), "")

	labels := [fieldCount]string{"username", "email", "password"}
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
		rows = append(rows, theme.Muted.Render("creating account…"))
	} else {
		rows = append(rows, theme.Muted.Render("enter to register · esc to sign in"))
	}

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return theme.Pane.Width(min(m.width-4, 48)).Render(form)
}
