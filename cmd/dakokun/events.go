package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/mq"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Logs request lifecycle events from the broker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		broker, err := server.OpenBroker(cfg)
		if err != nil {
			return err
		}
		defer broker.Close()

		handler := func(name string) mq.Handler {
			return func(ctx context.Context, msg mq.Message) error {
				log.InfoContext(ctx, "request event",
					slog.String("event", name),
					slog.String("message_id", msg.ID),
					slog.String("payload", string(msg.Data)),
				)
				return nil
			}
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		for _, name := range []string{request.EventRequestCreated, request.EventRequestResolved} {
			g.Go(func() error {
				return broker.Subscribe(ctx, name, handler(name))
			})
		}

		log.Info("listening for request events")
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
