package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/server"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const embeddedAddr = "127.0.0.1:8888"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Console logs would draw over the alt screen.
		if cfg.Log.Output == "" || cfg.Log.Output == "stderr" || cfg.Log.Output == "stdout" {
			logger.Discard()
		}

		c := newClient()
		if !cmd.Flags().Changed("server") {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			svc, _, closeFn, err := openService()
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer closeFn()

			srv := server.New(svc, embeddedAddr, ledger.Actor(cfg.Server.DefaultActor))
			serveErr := make(chan error, 1)
			go func() { serveErr <- srv.ListenAndServe(ctx) }()

			c = client.New("http://" + embeddedAddr).WithActor(flagActor)
			if err := waitReady(c, serveErr); err != nil {
				return err
			}
		}

		p := tea.NewProgram(tui.NewApp(c), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

// waitReady polls the embedded server until it answers or fails to start.
func waitReady(c *client.Client, serveErr <-chan error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		if err := c.Ping(ctx); err == nil {
			return nil
		}
		select {
		case err := <-serveErr:
			if err == nil {
				err = errors.New("server stopped")
			}
			return fmt.Errorf("embedded server: %w", err)
		case <-ctx.Done():
			return errors.New("timeout waiting for embedded server")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
