package tui

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	_ "modernc.org/sqlite"

	"github.com/elearnhq/termclass/internal/client/config"
	"github.com/elearnhq/termclass/internal/client/identity"
	"github.com/elearnhq/termclass/internal/client/links"
	"github.com/elearnhq/termclass/internal/client/services"
	"github.com/elearnhq/termclass/internal/client/session"
	"github.com/elearnhq/termclass/internal/logging"
)

// App owns the wiring: config, log file, session database, identity client,
// and the Bubbletea program around the Model.
type App struct {
	config  *config.Config
	model   Model
	db      *sql.DB
	logFile io.Closer
}

// NewApp wires the application from configuration. args are the leftover
// command-line arguments; the first one that parses as an emailed link
// routes the starting screen.
func NewApp(c *config.Config, args []string) (*App, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, fmt.Errorf("stdout is not a terminal")
	}

	logWriter, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log := logging.NewFileLogger(logWriter, slog.LevelInfo)

	ctx := context.Background()

	db, err := session.OpenEphemeral(ctx)
	if err != nil {
		logWriter.Close()
		return nil, fmt.Errorf("session store: %w", err)
	}
	store := session.NewSQLStore(db)

	client, err := identity.NewHTTPClient(c.IdentityBaseURL, identity.Options{
		Timeout: c.RequestTimeout,
		Logger:  log,
	})
	if err != nil {
		db.Close()
		logWriter.Close()
		return nil, fmt.Errorf("identity client: %w", err)
	}

	svc := services.New(client, store, log)

	var link *links.EmailLink
	for _, a := range args {
		if l, err := links.ParseEmailLink(a); err == nil {
			link = &l
			break
		}
	}

	model := NewModel(svc, log, c.CallbackPort, c.OTPCooldownSeconds, link)
	return &App{config: c, model: model, db: db, logFile: logWriter}, nil
}

// Run drives the program to completion on the attached terminal.
func (a *App) Run() error {
	defer a.logFile.Close()
	defer a.db.Close()
	_, err := tea.NewProgram(a.model, tea.WithAltScreen()).Run()
	return err
}
