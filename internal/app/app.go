package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"ragchat/client/internal/backend"
	"ragchat/client/internal/cli"
	"ragchat/client/internal/config"
	"ragchat/client/internal/database"
	"ragchat/client/internal/interfaces"
	"ragchat/client/internal/markdown"
	"ragchat/client/internal/repository"
	"ragchat/client/internal/service"
	"ragchat/client/internal/tui"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		slog.Error("Failed to open log file", "file", cfg.LogFile, "error", err)
		return 1
	}
	defer closeLog()
	setupLogger(cfg.LogLevel, logOut)

	logConfigSource()

	db, err := database.InitDB(cfg.StateDBPath)
	if err != nil {
		slog.Error("Failed to initialize state database", "path", cfg.StateDBPath, "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Debug("Opened client state database.", "path", cfg.StateDBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompter := cli.NewSurveyPrompter(os.Stderr)
	deps, err := newDeps(cfg, db, prompter)
	if err != nil {
		slog.Error("Failed to set up client", "error", err)
		return 1
	}
	deps.RunTUI = func(ctx context.Context) error {
		// The screen owns the terminal, so stderr logging is muted unless it goes to a file.
		if cfg.LogFile == "" {
			setupLogger(cfg.LogLevel, io.Discard)
			defer setupLogger(cfg.LogLevel, logOut)
		}
		return tui.Run(ctx, deps.Client, deps.Renderer, prompter)
	}

	root := cli.NewRootCmd(deps)
	if err := cli.Execute(ctx, root, prompter, os.Stderr); err != nil {
		slog.Debug("Command failed", "error", err)
		return 1
	}
	return 0
}

// newDeps wires the backend client, the state store and the session client.
func newDeps(cfg *config.Config, db *sql.DB, prompter interfaces.Prompter) (cli.Deps, error) {
	api := backend.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	state := repository.NewSQLiteRepository(db)
	client := service.NewClient(api, state, prompter)

	renderer, err := markdown.NewRenderer(cli.TermWidth(), color.NoColor)
	if err != nil {
		return cli.Deps{}, fmt.Errorf("could not create markdown renderer: %w", err)
	}

	return cli.Deps{
		Client:   client,
		Admin:    service.NewAdminService(client),
		Prompter: prompter,
		Renderer: renderer,
	}, nil
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Debug("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Debug("Configuration file not found. Using environment variables and defaults.")
	}
}

// openLogOutput returns stderr, or the named file opened for appending.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func setupLogger(logLevel string, w io.Writer) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
