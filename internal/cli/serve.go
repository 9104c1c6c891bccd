package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mediguard/internal/pipeline"
	"github.com/ppiankov/mediguard/internal/server"
)

var (
	serveHost string
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the screening API server",
	Long: `Serve exposes the screening pipelines as a JSON API:

  POST /api/v1/check/profile-image   multipart image upload
  POST /api/v1/check/food-image      multipart image upload + condition
  POST /api/v1/check/drug            drug and condition fields
  GET  /healthz

Example:
  mediguard serve
  mediguard serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	logger := newLogger()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	return server.New(cfg.Server, p, logger).Run()
}

// newLogger builds the process logger; verbose switches on debug level
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
