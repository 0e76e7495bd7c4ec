package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/attachments"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/memory"
	"github.com/SscSPs/bookkeeping_ledger/pkg/database"
)

// openRepositories builds the repository provider for the configured storage
// driver. The returned cleanup releases everything that was opened.
func openRepositories(ctx context.Context, logger *slog.Logger, cfg *config.Config, withAttachments bool) (portsrepo.RepositoryProvider, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var store portsrepo.AttachmentStore
	if withAttachments && cfg.AttachmentDBPath != "" {
		bolt, err := attachments.Open(cfg.AttachmentDBPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, cleanup, err
		}
		closers = append(closers, func() {
			if err := bolt.Close(); err != nil {
				logger.Error("Failed to close attachment database", slog.String("error", err.Error()))
			}
		})
		store = bolt
		logger.Info("Attachment store opened", slog.String("path", cfg.AttachmentDBPath))
	}

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage; data is lost on exit")
		return portsrepo.RepositoryProvider{UnitOfWork: memory.NewStore(), Attachments: store}, cleanup, nil

	case config.StorageDriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			cleanup()
			return portsrepo.RepositoryProvider{}, func() {}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		closers = append(closers, func() { database.ClosePgxPool(pool) })
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool, store), cleanup, nil
	}

	cleanup()
	return portsrepo.RepositoryProvider{}, func() {}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
