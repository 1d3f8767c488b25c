package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"student-console/internal/config"
	"student-console/internal/console"
	"student-console/internal/db"
	"student-console/internal/logger"
	"student-console/internal/student"

	"github.com/uptrace/bun"
)

type App struct {
	config  *config.Config
	db      *bun.DB
	logger  *slog.Logger
	console *console.Console
}

// New loads configuration, opens the store and wires the console. Any
// failure here is returned so the entry point can report it and exit.
func New(ctx context.Context, in io.Reader, out io.Writer) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := logger.NewWithServiceContext(ServiceName, Version, cfg.Log.Level)
	slog.SetDefault(slogLogger)
	slogLogger.Debug("config loaded", "env", cfg.Env, "database", cfg.Database.Path)

	return NewWithConfig(ctx, cfg, slogLogger, in, out)
}

func NewWithConfig(ctx context.Context, cfg *config.Config, slogLogger *slog.Logger, in io.Reader, out io.Writer) (*App, error) {
	database, err := db.Initialize(ctx, cfg.Database, slogLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	studentRepo := student.NewRepository(database)
	studentService := student.NewService(studentRepo, slogLogger)

	c := console.New(studentService, slogLogger,
		console.WithIO(in, out),
		console.WithInstitution(cfg.Institution.Name),
	)

	return &App{
		config:  cfg,
		db:      database,
		logger:  slogLogger,
		console: c,
	}, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	return a.console.Execute(ctx, args)
}

func (a *App) Close() {
	db.Close(a.db)
}
