package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdomain "todohub/internal/modules/auth/domain"
	authdto "todohub/internal/modules/auth/dto"
	apperrors "todohub/internal/platform/errors"
	"todohub/internal/ui/components"
	"todohub/internal/ui/guard"
	"todohub/internal/ui/theme"
	loginview "todohub/internal/ui/views/login"
	registerview "todohub/internal/ui/views/register"
	todosview "todohub/internal/ui/views/todos"
	usersview "todohub/internal/ui/views/users"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Login(ctx context.Context, email, password string) (authdto.SessionOutput, error)
	Register(ctx context.Context, username, email, password string) (authdto.SessionOutput, error)
	WhoAmI(ctx context.Context) (authdto.SessionOutput, error)
	Logout(ctx context.Context) error
	ListUsers(ctx context.Context) ([]authdto.UserOutput, error)
}

type sessionStatePort interface {
	Snapshot() authdomain.Session
	ClearError()
}

// ─── routes ──────────────────────────────────────────────────────────────────

const (
	routeLogin    = guard.RouteLogin
	routeRegister = "register"
	routeTodos    = guard.RouteTodos
	routeUsers    = "users"
)

// ─── messages ────────────────────────────────────────────────────────────────

type verifiedMsg struct{}

type loggedOutMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns route switching and the guard
// checks; every view owns its own interaction state, and all business state
// lives in the module stores.
type Model struct {
	session      sessionPort
	sessionState sessionStatePort
	todoPort     todosview.TodoPort
	chatPort     usersview.ChatPort

	route string

	loginView    loginview.Model
	registerView registerview.Model
	todosView    todosview.Model
	usersView    usersview.Model
	todosMounted bool
	usersMounted bool

	statusBar components.StatusBar
	width     int
	height    int
}

func NewModel(session sessionPort, sessionState sessionStatePort, todoPort todosview.TodoPort, chatPort usersview.ChatPort) Model {
	return Model{
		session:      session,
		sessionState: sessionState,
		todoPort:     todoPort,
		chatPort:     chatPort,
		route:        routeTodos,
		loginView:    loginview.New(session),
		registerView: registerview.New(session),
		statusBar:    components.NewStatusBar(),
	}
}

// Init verifies the unknown identity exactly once per program start; nothing
// in Update re-triggers verification on mere renders.
func (m Model) Init() tea.Cmd {
	snap := m.sessionState.Snapshot()
	if guard.NeedsVerify(snap, false) {
		session := m.session
		return func() tea.Msg {
			_, _ = session.WhoAmI(context.Background())
			return verifiedMsg{}
		}
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetWidth(msg.Width)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.teardownUsers()
			return m, tea.Quit
		case "ctrl+t":
			if m.authed() && m.route != routeTodos {
				return m.switchRoute(routeTodos)
			}
		case "ctrl+u":
			if m.authed() && m.route != routeUsers {
				return m.switchRoute(routeUsers)
			}
		case "ctrl+l":
			if m.authed() {
				m.teardownUsers()
				session := m.session
				return m, func() tea.Msg {
					_ = session.Logout(context.Background())
					return loggedOutMsg{}
				}
			}
		}

	case verifiedMsg, loggedOutMsg:
		// Session settled; the guard pass below routes accordingly.

	case loginview.SubmittedMsg:
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		cmds = append(cmds, cmd)

	case registerview.SubmittedMsg:
		var cmd tea.Cmd
		m.registerView, cmd = m.registerView.Update(msg)
		cmds = append(cmds, cmd)

	case loginview.GoRegisterMsg:
		m.route = routeRegister
		m.registerView = registerview.New(m.session)
		return m, m.registerView.Init()

	case registerview.GoLoginMsg:
		m.route = routeLogin
		m.loginView = loginview.New(m.session)
		return m, m.loginView.Init()

	case todosview.LoadedMsg:
		if errors.Is(msg.Err, apperrors.ErrUnauthenticated) {
			// The backend no longer recognizes the session: re-verify so the
			// session store settles and the guard bounces to login.
			session := m.session
			cmds = append(cmds, func() tea.Msg {
				_, _ = session.WhoAmI(context.Background())
				return verifiedMsg{}
			})
		}
		var cmd tea.Cmd
		m.todosView, cmd = m.todosView.Update(msg)
		cmds = append(cmds, cmd)
	}

	model, cmd := m.applyGuards()
	m = model
	cmds = append(cmds, cmd)

	// Route the remaining traffic to the mounted view.
	switch m.route {
	case routeLogin:
		if _, isKey := msg.(tea.KeyMsg); isKey || !isHandled(msg) {
			var cmd tea.Cmd
			m.loginView, cmd = m.loginView.Update(msg)
			cmds = append(cmds, cmd)
		}
	case routeRegister:
		if _, isKey := msg.(tea.KeyMsg); isKey || !isHandled(msg) {
			var cmd tea.Cmd
			m.registerView, cmd = m.registerView.Update(msg)
			cmds = append(cmds, cmd)
		}
	case routeTodos:
		if _, isLoaded := msg.(todosview.LoadedMsg); !isLoaded {
			var cmd tea.Cmd
			m.todosView, cmd = m.todosView.Update(msg)
			cmds = append(cmds, cmd)
		}
	case routeUsers:
		var cmd tea.Cmd
		m.usersView, cmd = m.usersView.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refreshStatusBar()
	return m, tea.Batch(cmds...)
}

// applyGuards re-evaluates the current route against the session snapshot and
// performs any forced redirect, mounting or unmounting views as needed.
func (m Model) applyGuards() (Model, tea.Cmd) {
	snap := m.sessionState.Snapshot()

	switch m.route {
	case routeTodos, routeUsers:
		result := guard.Protected(snap)
		if result.Decision == guard.Redirect {
			m.teardownUsers()
			m.todosMounted = false
			m.route = result.Target
			m.loginView = loginview.New(m.session)
			return m, m.loginView.Init()
		}
		if result.Decision == guard.Render && m.route == routeTodos && !m.todosMounted {
			m.todosView = todosview.New(m.todoPort)
			m.todosMounted = true
			return m, m.todosView.Init()
		}
	case routeLogin, routeRegister:
		result := guard.Public(snap)
		if result.Decision == guard.Redirect {
			m.route = result.Target
			m.todosView = todosview.New(m.todoPort)
			m.todosMounted = true
			return m, m.todosView.Init()
		}
	}
	return m, nil
}

func (m Model) switchRoute(route string) (Model, tea.Cmd) {
	if m.route == routeUsers && route != routeUsers {
		m.teardownUsers()
	}
	m.route = route
	switch route {
	case routeTodos:
		m.todosView = todosview.New(m.todoPort)
		m.todosMounted = true
		return m, m.todosView.Init()
	case routeUsers:
		snap := m.sessionState.Snapshot()
		if snap.Identity == nil {
			return m, nil
		}
		m.usersView = usersview.New(m.session, m.chatPort, snap.Identity.ID)
		m.usersMounted = true
		return m, m.usersView.Init()
	}
	return m, nil
}

func (m *Model) teardownUsers() {
	if m.usersMounted {
		m.usersView.Teardown()
		m.usersMounted = false
	}
}

func (m Model) authed() bool {
	return m.sessionState.Snapshot().Authenticated()
}

func (m *Model) refreshStatusBar() {
	snap := m.sessionState.Snapshot()
	if snap.Identity != nil {
		name := snap.Identity.Name
		if name == "" {
			name = snap.Identity.Email
		}
		m.statusBar.SetIdentity(name)
	} else {
		m.statusBar.SetIdentity("")
	}
	if m.route == routeTodos {
		done, total := m.todosView.Summary()
		m.statusBar.SetSummary(done, total)
	} else {
		m.statusBar.SetSummary(0, 0)
	}
	switch m.route {
	case routeUsers:
		m.statusBar.SetStatus("ctrl+t todos · ctrl+l sign out")
	case routeTodos:
		m.statusBar.SetStatus("ctrl+u people · ctrl+l sign out")
	default:
		m.statusBar.SetStatus("")
	}
}

func (m Model) View() string {
	snap := m.sessionState.Snapshot()

	var body string
	switch m.route {
	case routeTodos, routeUsers:
		// The first paint happens before any Update has run the guards, so
		// the view for this route may not be mounted yet.
		mounted := m.todosMounted
		if m.route == routeUsers {
			mounted = m.usersMounted
		}
		if !mounted || guard.Protected(snap).Decision != guard.Render {
			body = m.centered("Checking session…")
			break
		}
		if m.route == routeTodos {
			body = m.todosView.View()
		} else {
			body = m.usersView.View()
		}
	case routeLogin, routeRegister:
		if guard.Public(snap).Decision == guard.ShowLoading {
			body = m.centered("Checking session…")
			break
		}
		if m.route == routeLogin {
			body = m.loginView.View()
		} else {
			body = m.registerView.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())
}

func (m Model) centered(text string) string {
	return lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, theme.Muted.Render(text))
}

func isHandled(msg tea.Msg) bool {
	switch msg.(type) {
	case loginview.SubmittedMsg, registerview.SubmittedMsg:
		return true
	}
	return false
}
