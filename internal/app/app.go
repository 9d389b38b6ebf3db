// Package app wires the filewarden components together.
package app

import (
	"context"
	"os"
	"path/filepath"

	"filewarden/internal/config"
	apperrors "filewarden/internal/errors"
	"filewarden/internal/logger"
	"filewarden/internal/manifest"
	"filewarden/internal/menu"
	"filewarden/internal/scanner"
	"filewarden/internal/storage"
	"filewarden/internal/ui"
)

// App is the dependency container for a single filewarden run.
type App struct {
	config   *config.Config
	logger   logger.Logger
	storage  storage.Storage
	manifest manifest.Repository
	scanner  *scanner.Scanner
	menu     *menu.Menu
}

// New validates the environment and assembles the application.
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := storage.NewLocal(log)

	validator := NewWorkspaceValidator(cfg, store, log)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	// The manifest lives inside the workspace; create its directory up
	// front so the repository can open the database file.
	if err := store.EnsureDirectory(filepath.Dir(cfg.Manifest.Path)); err != nil {
		return nil, apperrors.StorageError(
			apperrors.CodeStorageGeneric,
			"failed to prepare manifest directory",
			err,
		).WithModule("app")
	}

	repo, err := manifest.OpenSQLite(cfg.Manifest.Path)
	if err != nil {
		return nil, err
	}

	sc := scanner.New(store, repo, log, cfg.Scan.HashLength)
	console := ui.NewConsole(log, os.Stdout)

	return &App{
		config:   cfg,
		logger:   log,
		storage:  store,
		manifest: repo,
		scanner:  sc,
		menu:     menu.New(cfg, console, sc, repo),
	}, nil
}

// Run bootstraps the manifest store and enters the interactive menu.
func (a *App) Run(ctx context.Context) error {
	if err := a.manifest.Bootstrap(ctx); err != nil {
		return err
	}
	return a.menu.Show(ctx)
}

// Close releases held resources.
func (a *App) Close() error {
	return a.manifest.Close()
}
