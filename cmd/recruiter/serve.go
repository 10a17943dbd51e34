package main

import (
	"context"
	"log"

	"github.com/jonathan/recruiter-copilot/internal/server"
	"github.com/jonathan/recruiter-copilot/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the recruiting operations as JSON endpoints.

Per-client rate limiting on the model-backed routes is off unless RATE_LIMIT_ENABLED=true.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config: 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := globals.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	gw, client, err := newGateway(context.Background(), cfg, globals.tier)
	if err != nil {
		return err
	}
	defer client.Close()

	srv := server.New(server.Config{
		Port:        cfg.Port,
		DefaultTone: cfg.DefaultTone,
		RateLimit:   ratelimit.LoadConfig(),
		Logger:      log.Default(),
	}, gw)

	return srv.Start()
}
