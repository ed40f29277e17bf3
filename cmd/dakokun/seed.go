package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/config"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Writes the demo directory and history into PostgreSQL",
	Long: `Writes the demo directory, attendance history and requests into
PostgreSQL. Rows that already exist are left untouched. Every demo user logs in
with the password "` + fixtures.DemoPassword + `".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.Backend != config.StorageBackendPostgres {
			return fmt.Errorf("seed requires STORAGE_BACKEND=%s", config.StorageBackendPostgres)
		}

		ctx := cmd.Context()
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		data := fixtures.Demo(time.Now(), loc)
		if err := fixtures.HashDemoPasswords(data.Users, bcrypt.DefaultCost); err != nil {
			return err
		}

		if err := seed(ctx, db, data, log); err != nil {
			return err
		}
		log.Info("demo data seeded",
			slog.Int("users", len(data.Users)),
			slog.Int("time_entries", len(data.TimeEntries)),
			slog.Int("requests", len(data.Requests)),
		)
		return nil
	},
}

// seed writes data in one transaction. The supervisor foreign key is
// deferred, so users can be inserted in any order.
func seed(ctx context.Context, db *database.DB, data fixtures.DemoData, log *slog.Logger) error {
	users := postgresql.NewUserRepository(db)
	entries := postgresql.NewTimeEntryRepository(db)
	requests := postgresql.NewRequestRepository(db)

	return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		for _, u := range data.Users {
			_, err := users.GetByID(txCtx, u.ID)
			if err == nil {
				log.Debug("user exists, skipping", slog.String("user_id", u.ID))
				continue
			}
			if !errors.Is(err, user.ErrUserNotFound) {
				return err
			}
			if _, err := users.Create(txCtx, u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.ID, err)
			}
		}

		for _, e := range data.TimeEntries {
			if err := entries.Seed(txCtx, e); err != nil {
				return err
			}
		}

		for _, r := range data.Requests {
			_, err := requests.GetByID(txCtx, r.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, request.ErrRequestNotFound) {
				return err
			}
			if _, err := requests.Create(txCtx, r); err != nil {
				return fmt.Errorf("seed request %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
