package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/suhruthkrishna/bookpal/internal/config"
	"github.com/suhruthkrishna/bookpal/internal/handlers"
	"github.com/suhruthkrishna/bookpal/internal/library"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the BookPal HTTP API",
		Long: `Starts the BookPal API on the specified port.

The API manages your favorites library and checks candidate books
against your per-genre taste profiles.`,
		Example: `  # Start server on default port 8888
  bookpal serve

  # Start server on custom port
  bookpal serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPathFrom(cmd))
			if err != nil {
				return err
			}

			service, err := library.NewService(cfg)
			if err != nil {
				return err
			}
			handler := handlers.New(service)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/favorites", handler.HandleFavorites)
			mux.HandleFunc("/api/favorites/", handler.HandleFavoriteDetail)
			mux.HandleFunc("/api/check", handler.HandleCheck)
			mux.HandleFunc("/api/reset", handler.HandleReset)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("BookPal API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
