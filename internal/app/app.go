package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalboard/internal/config"
	"github.com/templui/goalboard/internal/db"
	"github.com/templui/goalboard/internal/markdown"
	"github.com/templui/goalboard/internal/repository"
	"github.com/templui/goalboard/internal/service"
	"github.com/templui/goalboard/internal/storage"
)

var newGoalRepository = repository.NewGoalRepository

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	Slot        storage.Slot
	GoalService *service.GoalService
	Markdown    *markdown.Parser
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var database *sqlx.DB

	// The sql driver keeps the slot in a database table
	if cfg.StorageDriver == "sql" {
		var err error
		database, err = db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	slot, err := storage.New(ctx, cfg, database)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	goalRepository, err := newGoalRepository(slot)
	if err != nil {
		(&App{DB: database, Slot: slot}).Close()
		return nil, fmt.Errorf("failed to initialize goal repository: %w", err)
	}

	goalService := service.NewGoalService(ctx, goalRepository)

	return &App{
		Cfg:         cfg,
		DB:          database,
		Slot:        slot,
		GoalService: goalService,
		Markdown:    markdown.NewParser(),
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if closer, ok := a.Slot.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
