package main

import (
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/projtrack/internal/mcp"
)

func newStdioCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve the MCP tools over stdin/stdout",
		Long: `Runs the MCP server on stdin/stdout for clients that launch projtrack
as a subprocess. Logs go to stderr so stdout stays clean for JSON-RPC.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(mcp.Config{
				Projects: a.projects,
				Logger:   a.logger.Named("mcp"),
				Version:  version,
			})

			a.logger.Info("starting stdio transport")
			// Run blocks until stdin closes or ctx is canceled.
			return server.Run(ctx, &sdkmcp.StdioTransport{})
		},
	}
}
