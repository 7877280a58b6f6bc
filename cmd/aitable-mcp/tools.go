package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/aitable-mcp/internal/aitable"
	aitablemcp "github.com/roivaz/aitable-mcp/internal/mcp"
	"github.com/roivaz/aitable-mcp/internal/mcp/tools"
	"github.com/roivaz/aitable-mcp/internal/metrics"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalogue offered to MCP hosts as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The catalogue does not depend on credentials.
			registry := tools.NewRegistry(aitable.NewClient(aitable.Config{}))
			out, err := catalogueYAML(registry)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func catalogueYAML(registry *tools.Registry) ([]byte, error) {
	list := make([]mcp.Tool, 0, len(registry.Names()))
	for _, def := range registry.Definitions() {
		list = append(list, def.Tool)
	}
	out, err := yaml.Marshal(map[string]any{"tools": list})
	if err != nil {
		return nil, fmt.Errorf("render tool catalogue: %w", err)
	}
	return out, nil
}

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool directly and print its result",
		Args:  cobra.ExactArgs(1),
		RunE:  runCall,
	}
	cmd.Flags().String("args", "{}", "Tool arguments as a YAML or JSON object")
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	settings, logger, err := setup()
	if err != nil {
		return err
	}
	rawArgs, _ := cmd.Flags().GetString("args")
	toolArgs, err := parseToolArgs(rawArgs)
	if err != nil {
		return err
	}

	client := aitablemcp.NewAITableClient(settings, metrics.New(), logger)
	res, err := invoke(cmd.Context(), tools.NewRegistry(client), args[0], toolArgs)
	if err != nil {
		return err
	}
	for _, content := range res.Content {
		if text, ok := content.(mcp.TextContent); ok {
			fmt.Fprintln(cmd.OutOrStdout(), text.Text)
		}
	}
	if res.IsError {
		return fmt.Errorf("tool %s returned an error", args[0])
	}
	return nil
}

func invoke(ctx context.Context, registry *tools.Registry, name string, toolArgs map[string]any) (*mcp.CallToolResult, error) {
	res, err := registry.Call(ctx, name, toolArgs)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return res, nil
}

// parseToolArgs accepts YAML or JSON and returns the JSON-decoded object, so
// values reach the handlers exactly as an MCP host would send them.
func parseToolArgs(raw string) (map[string]any, error) {
	jsonArgs, err := yaml.YAMLToJSON([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parse --args: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(jsonArgs, &out); err != nil {
		return nil, fmt.Errorf("--args must be an object: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
