package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	authinadapter "todohub/internal/modules/auth/adapter/in"
	authoutadapter "todohub/internal/modules/auth/adapter/out"
	authin "todohub/internal/modules/auth/port/in"
	authservice "todohub/internal/modules/auth/service"
	authusecase "todohub/internal/modules/auth/usecase"
	chatoutadapter "todohub/internal/modules/chat/adapter/out"
	chatin "todohub/internal/modules/chat/port/in"
	chatservice "todohub/internal/modules/chat/service"
	chatusecase "todohub/internal/modules/chat/usecase"
	todoinadapter "todohub/internal/modules/todos/adapter/in"
	todooutadapter "todohub/internal/modules/todos/adapter/out"
	todosin "todohub/internal/modules/todos/port/in"
	todoservice "todohub/internal/modules/todos/service"
	todousecase "todohub/internal/modules/todos/usecase"
	"todohub/internal/platform/clock"
	"todohub/internal/platform/config"
	"todohub/internal/platform/id"
	uiapp "todohub/internal/ui/app"
)

// App is the wired object graph. CLI handlers serve the cobra commands; the
// stores back both the TUI views and the handlers.
type App struct {
	AuthCLI authinadapter.CLIHandler
	TodoCLI todoinadapter.CLIHandler

	Session authin.Usecase
	Todos   todosin.Usecase
	Chat    chatin.Usecase
}

func New(cfg config.Config) (*App, error) {
	jar, err := authoutadapter.NewFileJar(cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Jar: jar, Timeout: 15 * time.Second}

	sessionStore := authusecase.NewStore(authservice.Validator{}, authoutadapter.NewHTTPAPI(cfg.APIBaseURL, httpClient, jar))

	cache, err := todooutadapter.NewSQLiteSnapshotCache(cfg.CachePath)
	if err != nil {
		// The cache is a convenience; a broken local file must not keep the
		// client from talking to the server.
		slog.Warn("snapshot cache disabled", "error", err)
		cache = nil
	}
	todoStore := todousecase.NewStore(todoservice.Deriver{}, todooutadapter.NewHTTPAPI(cfg.APIBaseURL, httpClient), cache)

	overlay := chatusecase.NewOverlay(
		chatservice.Router{},
		chatoutadapter.NewWebSocketTransport(cfg.SocketURL, httpClient),
		clock.SystemClock{},
		id.RandomHex{},
	)

	return &App{
		AuthCLI: authinadapter.NewCLIHandler(sessionStore),
		TodoCLI: todoinadapter.NewCLIHandler(todoStore),
		Session: sessionStore,
		Todos:   todoStore,
		Chat:    overlay,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthCLI, app.Session, app.Todos, app.Chat)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	// Whatever happened in the TUI, the socket must not outlive it.
	app.Chat.Close()
	return err
}
