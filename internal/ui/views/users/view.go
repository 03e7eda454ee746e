package users

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "todohub/internal/modules/auth/dto"
	chatdto "todohub/internal/modules/chat/dto"
	"todohub/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type RosterPort interface {
	ListUsers(ctx context.Context) ([]authdto.UserOutput, error)
}

type ChatPort interface {
	Connect(ctx context.Context, selfID string) error
	Open(counterpartID string)
	Send(ctx context.Context, text string) (chatdto.MessageOutput, error)
	Close()
	Snapshot() chatdto.OverlayOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type UsersLoadedMsg struct {
	Users []authdto.UserOutput
	Err   error
}

type ConnectedMsg struct {
	Err error
}

type SentMsg struct {
	Err error
}

// refreshMsg polls the overlay snapshot so inbound socket traffic shows up
// without a keypress.
type refreshMsg time.Time

const refreshEvery = 400 * time.Millisecond

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	roster RosterPort
	chat   ChatPort

	selfID   string
	users    []authdto.UserOutput
	overlay  chatdto.OverlayOutput
	cursor   int
	chatting bool
	input    textinput.Model
	errLine  string
	width    int
	height   int
}

func New(roster RosterPort, chat ChatPort, selfID string) Model {
	input := textinput.New()
	input.Placeholder = "type a message…"
	input.Prompt = "> "
	return Model{roster: roster, chat: chat, selfID: selfID, input: input}
}

// Init loads the roster, opens the socket for this identity, and starts the
// snapshot poll. The app calls Teardown when this view unmounts.
func (m Model) Init() tea.Cmd {
	roster := m.roster
	chat := m.chat
	selfID := m.selfID
	return tea.Batch(
		func() tea.Msg {
			users, err := roster.ListUsers(context.Background())
			return UsersLoadedMsg{Users: users, Err: err}
		},
		func() tea.Msg {
			return ConnectedMsg{Err: chat.Connect(context.Background(), selfID)}
		},
		tick(),
	)
}

// Teardown releases the socket. Safe to call repeatedly.
func (m Model) Teardown() {
	m.chat.Close()
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case UsersLoadedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.errLine = ""
		m.users = make([]authdto.UserOutput, 0, len(msg.Users))
		for _, u := range msg.Users {
			if u.ID != m.selfID {
				m.users = append(m.users, u)
			}
		}

	case ConnectedMsg:
		if msg.Err != nil {
			m.errLine = "chat offline: " + msg.Err.Error()
		}
		m.overlay = m.chat.Snapshot()

	case SentMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		}
		m.overlay = m.chat.Snapshot()

	case refreshMsg:
		m.overlay = m.chat.Snapshot()
		return m, tick()

	case tea.KeyMsg:
		if m.chatting {
			return m.updateChatting(msg)
		}
		return m.updateRoster(msg)
	}
	return m, nil
}

func (m Model) updateRoster(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.users) {
			m.chat.Open(m.users[m.cursor].ID)
			m.overlay = m.chat.Snapshot()
			m.chatting = true
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m Model) updateChatting(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chatting = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case "enter":
		text := m.input.Value()
		m.input.Reset()
		chat := m.chat
		return m, func() tea.Msg {
			_, err := chat.Send(context.Background(), text)
			return SentMsg{Err: err}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	rosterW := m.width * 4 / 10
	chatW := m.width - rosterW

	rosterPane := theme.Pane.Width(max(rosterW-2, 20)).Render(m.renderRoster())
	chatStyle := theme.Pane
	if m.chatting {
		chatStyle = theme.PaneActive
	}
	chatPane := chatStyle.Width(max(chatW-4, 20)).Render(m.renderChat())

	return lipgloss.JoinHorizontal(lipgloss.Top, rosterPane, chatPane)
}

func (m Model) renderRoster() string {
	online := map[string]bool{}
	for _, id := range m.overlay.Online {
		online[id] = true
	}

	var rows []string
	rows = append(rows, theme.Title.Render("People"), "")
	if len(m.users) == 0 {
		rows = append(rows, theme.Muted.Render("nobody else here yet"))
	}
	for i, u := range m.users {
		dot := theme.Offline.Render("●")
		if online[u.ID] {
			dot = theme.Online.Render("●")
		}
		name := u.Name
		if name == "" {
			name = u.Email
		}
		prefix := "  "
		if i == m.cursor && !m.chatting {
			prefix = theme.Title.Render("> ")
		}
		row := prefix + dot + " " + name
		if n := m.overlay.Unread[u.ID]; n > 0 {
			row += " " + theme.Badge.Render(fmt.Sprintf("%d", n))
		}
		rows = append(rows, row)
	}
	rows = append(rows, "", theme.Muted.Render("enter to chat"))
	if m.errLine != "" {
		rows = append(rows, theme.Error.Render(m.errLine))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderChat() string {
	if m.overlay.ActiveID == "" {
		return theme.Muted.Render("Pick someone to start a conversation")
	}

	name := m.overlay.ActiveID
	for _, u := range m.users {
		if u.ID == m.overlay.ActiveID {
			if u.Name != "" {
				name = u.Name
			} else {
				name = u.Email
			}
		}
	}

	var rows []string
	rows = append(rows, theme.Title.Render("Chat with "+name))
	if m.overlay.State != "connected" {
		rows = append(rows, theme.Error.Render("disconnected — reopen this tab to reconnect"))
	}
	rows = append(rows, "")

	for _, msg := range m.overlay.Messages {
		bubble := theme.BubblePeer.Render(msg.Text)
		if msg.SenderID == m.selfID {
			bubble = theme.BubbleSelf.Render(msg.Text)
		}
		rows = append(rows, bubble)
	}
	if len(m.overlay.Messages) == 0 {
		rows = append(rows, theme.Muted.Render("no messages yet"))
	}

	rows = append(rows, "")
	if m.chatting {
		rows = append(rows, m.input.View())
	} else {
		rows = append(rows, theme.Muted.Render("enter to type · esc to browse"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
