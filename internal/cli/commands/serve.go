package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvql/internal/cli/config"
	"github.com/leapstack-labs/csvql/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve queries over HTTP",
		Long: `Start an HTTP server that runs queries against the data directory.

Endpoints:
  POST /api/query     body {"code": "<query>"}, returns the matching rows as JSON
  GET  /api/language  keywords, operators and brackets for editor integration
  GET  /healthz       liveness check`,
		Example: `  csvql serve --data-dir ./data --addr :8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Engine:            cmdCtx.Engine,
				Addr:              cmdCtx.Cfg.Server.Addr,
				ReadHeaderTimeout: cmdCtx.Cfg.Server.ReadHeaderTimeout,
				QueryTimeout:      cmdCtx.Cfg.Server.QueryTimeout,
				MaxBodyBytes:      cmdCtx.Cfg.Server.MaxBodyBytes,
				Logger:            cmdCtx.Logger,
			})
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Address to listen on")
	cmd.Flags().Duration("query-timeout", 30*time.Second, "Maximum duration of one query (0 for no limit)")

	return cmd
}
