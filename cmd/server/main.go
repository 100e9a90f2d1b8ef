package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "projtrack",
		Short: "Project Tracking API",
		Long: `projtrack serves a read-only catalog of generated projects over HTTP
and MCP. The dataset is generated once at startup from a seed.

Configuration comes from an optional YAML file (--config or
PROJTRACK_CONFIG_PATH) and PROJTRACK_* environment variables.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newStdioCmd(&configPath))
	rootCmd.AddCommand(newGenerateCmd(&configPath))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
