package app_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	authdomain "todohub/internal/modules/auth/domain"
	authdto "todohub/internal/modules/auth/dto"
	chatdto "todohub/internal/modules/chat/dto"
	tododto "todohub/internal/modules/todos/dto"
	"todohub/internal/ui/app"
)

type fakeSession struct{}

func (fakeSession) Login(context.Context, string, string) (authdto.SessionOutput, error) {
	return authdto.SessionOutput{}, nil
}

func (fakeSession) Register(context.Context, string, string, string) (authdto.SessionOutput, error) {
	return authdto.SessionOutput{}, nil
}

func (fakeSession) WhoAmI(context.Context) (authdto.SessionOutput, error) {
	return authdto.SessionOutput{}, nil
}

func (fakeSession) Logout(context.Context) error { return nil }

func (fakeSession) ListUsers(context.Context) ([]authdto.UserOutput, error) { return nil, nil }

type fakeSessionState struct {
	session authdomain.Session
}

func (f fakeSessionState) Snapshot() authdomain.Session { return f.session }

func (fakeSessionState) ClearError() {}

type fakeTodoPort struct{}

func (fakeTodoPort) Prime(context.Context) {}

func (fakeTodoPort) FetchAll(context.Context) (tododto.ListOutput, error) {
	return tododto.ListOutput{}, nil
}

func (fakeTodoPort) Add(context.Context, string) (tododto.TodoOutput, error) {
	return tododto.TodoOutput{}, nil
}

func (fakeTodoPort) Update(context.Context, tododto.UpdateInput) (tododto.TodoOutput, error) {
	return tododto.TodoOutput{}, nil
}

func (fakeTodoPort) Remove(context.Context, string) error { return nil }
func (fakeTodoPort) Filtered(string) []tododto.TodoOutput { return nil }

func (fakeTodoPort) Stats() tododto.StatsOutput { return tododto.StatsOutput{} }

func (fakeTodoPort) ClearError() {}

type fakeChatPort struct{}

func (fakeChatPort) Connect(context.Context, string) error { return nil }

func (fakeChatPort) Open(string) {}

func (fakeChatPort) Send(context.Context, string) (chatdto.MessageOutput, error) {
	return chatdto.MessageOutput{}, nil
}

func (fakeChatPort) Close() {}

func (fakeChatPort) Snapshot() chatdto.OverlayOutput { return chatdto.OverlayOutput{} }

func newModel(session authdomain.Session) app.Model {
	return app.NewModel(fakeSession{}, fakeSessionState{session: session}, fakeTodoPort{}, fakeChatPort{})
}

// The runtime renders the model once before the first Update, so no view is
// mounted yet on the initial paint.
func TestFirstPaintShowsLoadingBeforeGuardsRun(t *testing.T) {
	t.Parallel()
	m := newModel(authdomain.Session{Status: authdomain.StatusUnauthenticated})

	_ = m.Init()
	out := m.View()
	if !strings.Contains(out, "Checking session") {
		t.Fatalf("expected the loading placeholder on first paint, got %q", out)
	}
}

func TestUnauthenticatedSessionLandsOnLogin(t *testing.T) {
	t.Parallel()
	m := newModel(authdomain.Session{Status: authdomain.StatusUnauthenticated})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	out := next.View()
	if !strings.Contains(out, "Sign in") {
		t.Fatalf("expected the login form after the guard pass, got %q", out)
	}
}

func TestAuthenticatedSessionMountsTodos(t *testing.T) {
	t.Parallel()
	m := newModel(authdomain.Session{
		Status:   authdomain.StatusAuthenticated,
		Identity: &authdomain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
	})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	out := next.View()
	if !strings.Contains(out, "Loading todos") {
		t.Fatalf("expected the todos view once authenticated, got %q", out)
	}
}
