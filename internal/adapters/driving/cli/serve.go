package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/adapters/driving/mcp"
	"github.com/custodia-labs/parallax/internal/logger"
)

var (
	serveHTTP     bool
	serveAddr     string
	serveNoReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing search, compare,
get_article and list_tags tools.

By default, the server communicates over stdio using JSON-RPC and can be
used with any MCP-compatible assistant.

Use --http to serve the streamable HTTP transport instead. Prometheus
metrics are then available at /metrics on the same address.

While serving, the content directory is watched and the index rebuilt
when articles change, unless --no-reload is given or watching is disabled
in the settings.

Examples:
  # Stdio mode
  parallax serve

  # HTTP mode on the configured address
  parallax serve --http

  # HTTP mode on a specific address
  parallax serve --http --addr :8090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "serve over HTTP instead of stdio")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default from settings)")
	serveCmd.Flags().BoolVar(&serveNoReload, "no-reload", false, "do not rebuild the index on content changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := ensureIndex(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	ports := &mcp.Ports{
		Search:    searchService,
		Catalogue: catalogueService,
		Compare:   compareService,
		Articles:  articleService,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if reloader != nil && !serveNoReload {
		go func() {
			if err := reloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(err, "content reloader stopped")
			}
		}()
	}

	if serveHTTP {
		addr := serveAddr
		if addr == "" && settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				addr = settings.HTTPAddr
			}
		}
		if addr == "" {
			return errors.New("no HTTP address: pass --addr or set mcp.http_addr")
		}
		if metricsHandler != nil {
			server.SetMetricsHandler(metricsHandler)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
