package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/todomcp/internal/cli"
	httpAdapter "github.com/aretw0/todomcp/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves /assist, /tasks, /schema, /health, /info, /openapi.yaml and /metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		if !cmd.Flags().Changed("port") {
			port = app.Config.Server.HTTPPort
		}

		handler, err := httpAdapter.NewHandler(app.Assistant,
			httpAdapter.WithLogger(app.Logger),
			httpAdapter.WithGatherer(app.Registry),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			cli.PrintSystemMessage(cmd.OutOrStdout(), "Starting todomcp HTTP API on %s", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			cli.PrintSystemMessage(cmd.OutOrStdout(), "Start shutdown... Signal: %v", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.Logger.Error("Graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			cli.PrintSystemMessage(cmd.OutOrStdout(), "todomcp HTTP API stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
