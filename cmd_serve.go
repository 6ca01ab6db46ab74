package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, then $PORT, then :8080)")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	log := logrus.NewEntry(c.log)

	// Warm the cache so a broken data dir shows up at startup. The dashboard
	// still serves its error page until the data is fixed and reloaded.
	if ds, err := c.store.Load(ctx); err != nil {
		log.WithError(err).Warn("⚠️ Bracket data did not load")
	} else {
		log.WithFields(logrus.Fields{
			"source": c.store.Source().String(),
			"teams":  ds.Advancement.Len(),
			"games":  ds.Winners.Len(),
		}).Info("📊 Loaded bracket data")
	}

	srv := &http.Server{
		Addr:              c.cfg.Server.Addr,
		Handler:           newServer(c.store, log).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("🏀 Bracket Explorer is running on http://localhost%s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
