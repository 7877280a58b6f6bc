package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/roivaz/aitable-mcp/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:           "aitable-mcp",
		Short:         "MCP server exposing AITable.ai datasheet records as tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.PersistentFlags().String("api-key", "", "AITable API token (defaults to $AITABLE_API_KEY)")
	root.PersistentFlags().String("base-url", "", "AITable API base URL")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("transport", "", "MCP transport: stdio or http")
	root.PersistentFlags().String("host", "", "HTTP host")
	root.PersistentFlags().Int("port", 0, "HTTP port")
	root.PersistentFlags().String("endpoint-path", "", "HTTP path of the MCP endpoint")

	root.AddCommand(newServeCmd(), newToolsCmd(), newCallCmd())

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("aitable-mcp: %v", err)
	}
}
