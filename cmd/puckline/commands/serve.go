package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmelo/puckline/internal/api"
	"github.com/hmelo/puckline/internal/api/handlers"
	"github.com/hmelo/puckline/internal/pipeline"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                         - Health check
  GET  /api/predictions/{date}         - Full ranked slate for a date
  GET  /api/predictions/{date}/top     - Top picks (default 10, ?limit=N)
  GET  /api/predictions/{date}/summary - Confidence-tier counts
  POST /api/predictions/generate       - Trigger a generation run
  GET  /api/lines/{team}               - Published line combinations

Example:
  go run ./cmd/puckline serve
  go run ./cmd/puckline serve --port 8090`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "server port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Puckline API Server ===")

	d, err := initDeps(true)
	if err != nil {
		return err
	}
	defer d.Close()

	if servePort != "" {
		d.cfg.Port = servePort
	}

	if err := d.repo.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	gen := d.newGenerator(pipeline.DefaultOptions(), false)

	predictionsHandler := handlers.NewPredictionsHandler(d.repo, gen, d.log)
	linesHandler := handlers.NewLinesHandler(d.provider, d.log)

	router := api.NewRouter(predictionsHandler, linesHandler, d.db, d.log)
	server := api.New(d.cfg, d.log, router)

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\nServer running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}
