package bootstrap

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	assistantadapter "libtrack/internal/modules/assistant/adapter/out"
	assistantin "libtrack/internal/modules/assistant/port/in"
	assistantusecase "libtrack/internal/modules/assistant/usecase"
	exportadapter "libtrack/internal/modules/export/adapter/out"
	exportin "libtrack/internal/modules/export/port/in"
	exportusecase "libtrack/internal/modules/export/usecase"
	sessioninadapter "libtrack/internal/modules/session/adapter/in"
	sessionadapter "libtrack/internal/modules/session/adapter/out"
	sessionin "libtrack/internal/modules/session/port/in"
	sessionout "libtrack/internal/modules/session/port/out"
	sessionservice "libtrack/internal/modules/session/service"
	sessionusecase "libtrack/internal/modules/session/usecase"
	statsinadapter "libtrack/internal/modules/stats/adapter/in"
	statsadapter "libtrack/internal/modules/stats/adapter/out"
	statsin "libtrack/internal/modules/stats/port/in"
	statsservice "libtrack/internal/modules/stats/service"
	statsusecase "libtrack/internal/modules/stats/usecase"
	"libtrack/internal/platform/clock"
	"libtrack/internal/platform/config"
	"libtrack/internal/platform/id"
	uiapp "libtrack/internal/ui/app"
	"libtrack/internal/ui/theme"
)

// App wires the modules together. Everything hangs off one in-memory
// session store; the sqlite mirror rehydrates it at startup and trails
// every mutation.
type App struct {
	Config    config.Config
	Session   sessionin.Usecase
	Stats     statsin.Usecase
	Export    exportin.Usecase
	Assistant assistantin.Usecase

	SessionCLI sessioninadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler

	store sessionout.LogStore
}

// New builds the application for the given data directory. A broken
// mirror degrades to in-memory operation with a warning on stderr
// rather than refusing to start.
func New(ctx context.Context, dataDir string) (*App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	theme.Use(cfg.Theme)

	svc := sessionservice.NewSessionService(clock.SystemClock{}, id.RandomHex{})

	var store sessionout.LogStore
	if s, err := sessionadapter.NewSQLiteLogStore(cfg.DBPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: session mirror unavailable, running in memory: %v\n", err)
	} else {
		store = s
	}

	session := sessionusecase.NewInteractor(svc, store)
	if err := session.Rehydrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not rehydrate sessions: %v\n", err)
	}

	source := statsadapter.NewStoreSessionSource(svc)
	stats := statsusecase.NewInteractor(statsservice.NewStatsService(), source)

	export := exportusecase.NewInteractor(
		exportadapter.NewGofpdfWriter(),
		exportadapter.NewBasicfontWriter(),
	)

	apiKey := cfg.Assistant.APIKey
	if env := os.Getenv("GEMINI_API_KEY"); env != "" {
		apiKey = env
	}
	generator := assistantadapter.NewGeminiClient(apiKey, cfg.Assistant.Model, cfg.Assistant.BaseURL)
	assistant := assistantusecase.NewInteractor(clock.SystemClock{}, source, generator)

	return &App{
		Config:     cfg,
		Session:    session,
		Stats:      stats,
		Export:     export,
		Assistant:  assistant,
		SessionCLI: sessioninadapter.NewCLIHandler(session),
		StatsCLI:   statsinadapter.NewCLIHandler(stats),
		store:      store,
	}, nil
}

// RunTUI starts the full-screen terminal interface.
func RunTUI(app *App) error {
	model := uiapp.New(uiapp.Ports{
		Session:   app.Session,
		Stats:     app.Stats,
		Export:    app.Export,
		Assistant: app.Assistant,
		Config:    app.Config,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Close releases the mirror. Safe when the mirror never opened.
func (a *App) Close() error {
	if closer, ok := a.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
