package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/accounting"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/events"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/server"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, _, closeFn, err := openService()
		if err != nil {
			return err
		}
		defer closeFn()

		srv := server.New(svc, cfg.Server.Addr, ledger.Actor(cfg.Server.DefaultActor))
		return srv.ListenAndServe(ctx)
	},
}

// openService wires the store, the event publisher and the accounting
// service from the loaded config. The returned func releases both.
func openService() (*accounting.Service, *store.Store, func(), error) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	pub := events.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if len(cfg.Kafka.Brokers) > 0 {
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing transaction events")
	}
	svc := accounting.New(st,
		accounting.WithPublisher(pub),
		accounting.WithMaxCatchUpPeriods(cfg.Charges.MaxCatchUpPeriods),
	)
	return svc, st, func() {
		if err := pub.Close(); err != nil {
			log.Warn().Err(err).Msg("closing event publisher")
		}
		st.Close()
	}, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8888", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
