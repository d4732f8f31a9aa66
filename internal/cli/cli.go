// Package cli provides the shared plumbing for kodama's command-line
// surface: the application context, output formatting, and entity
// resolution helpers used by the command packages.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kodama-kanban/kodama/internal/config"
	"github.com/kodama-kanban/kodama/internal/mailer"
	"github.com/kodama-kanban/kodama/internal/storage"
	"github.com/kodama-kanban/kodama/internal/store"
)

// CLI is the application context for a single command invocation.
type CLI struct {
	Store  *store.Store
	Config *config.Config

	db *sql.DB
}

// NewCLI loads config, opens the board database, and builds the store.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := cfg.DataPath
	if path == "" {
		path, err = storage.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := storage.OpenDB(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board database: %w", err)
	}

	st, err := store.Open(ctx, storage.NewDocumentStore(db), mailer.FromConfig(cfg.SMTP))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load board state: %w", err)
	}

	return &CLI{
		Store:  st,
		Config: cfg,
		db:     db,
	}, nil
}

// Close cleans up CLI resources.
func (c *CLI) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
