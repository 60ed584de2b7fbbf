package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"car-price-scraper/dashboard"
	"car-price-scraper/storage"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [--addr :8501]",
	Short: "Serves the price dashboard and JSON API over complete.json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.DashboardAddr
		if flagAddr != "" {
			addr = flagAddr
		}

		server := dashboard.NewServer(logger, storage.NewCorpusStore(cfg.CompletePath))
		srv := &http.Server{
			Addr:         addr,
			Handler:      server.Routes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Dashboard listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		case <-cmd.Context().Done():
		}

		logger.Info("Shutting down dashboard...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

var (
	flagSnapshotURL string
	flagSnapshotOut string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [--url http://localhost:8501/] [--out dashboard.png]",
	Short: "Renders the running dashboard in headless Chrome and saves a PNG.",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := flagSnapshotURL
		if url == "" {
			url = "http://localhost" + cfg.DashboardAddr + "/"
		}
		if err := dashboard.Snapshot(cmd.Context(), url, flagSnapshotOut, cfg.ChromeBin); err != nil {
			return err
		}
		logger.Info("Dashboard snapshot written to %s", flagSnapshotOut)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides DASHBOARD_ADDR)")
	snapshotCmd.Flags().StringVar(&flagSnapshotURL, "url", "", "dashboard URL, query string included")
	snapshotCmd.Flags().StringVar(&flagSnapshotOut, "out", "dashboard.png", "output PNG path")
	rootCmd.AddCommand(serveCmd, snapshotCmd)
}
