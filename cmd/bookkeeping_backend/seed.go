package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/chart"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

func newSeedChartCmd(logger *slog.Logger) *cobra.Command {
	var username, file string

	cmd := &cobra.Command{
		Use:   "seed-chart",
		Short: "Create a chart of accounts for a user from a YAML file",
		Example: `  bookkeeping_backend seed-chart --user ana --file charts/household.yaml

  # charts/household.yaml
  book: Household
  accounts:
    - {code: "1000", name: Cash, type: Asset, category: Current Assets}
    - {code: "1010", name: Petty Cash, type: Asset, category: Current Assets, parent: "1000"}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			c, err := chart.Load(f)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.StorageDriver == config.StorageDriverMemory {
				return fmt.Errorf("seed-chart needs persistent storage, STORAGE_DRIVER is %q", cfg.StorageDriver)
			}
			repos, cleanup, err := openRepositories(cmd.Context(), logger, cfg, false)
			if err != nil {
				return err
			}
			defer cleanup()

			var user *domain.User
			err = repos.UnitOfWork.ReadSnapshot(cmd.Context(), func(ctx context.Context, uow portsrepo.UnitOfWork) error {
				user, err = uow.Users().FindUserByUsername(ctx, username)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to find user %q: %w", username, err)
			}

			svc := services.NewServiceContainer(cfg, repos)
			res, err := chart.Seed(cmd.Context(), svc.Book, svc.Account, user.UserID, c)
			if err != nil {
				return err
			}
			logger.Info("Chart of accounts seeded",
				slog.String("user_id", user.UserID),
				slog.Int64("book_id", res.BookID),
				slog.Int("created", res.Created),
				slog.Int("skipped", res.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "username that owns the book")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the chart YAML file")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
