package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/aitable-mcp/internal/aitable"
	"github.com/roivaz/aitable-mcp/internal/config"
	"github.com/roivaz/aitable-mcp/internal/logging"
	"github.com/roivaz/aitable-mcp/internal/mcp/tools"
	"github.com/roivaz/aitable-mcp/internal/metrics"
)

type Config struct {
	Registry     *tools.Registry
	Options      []server.StreamableHTTPOption
	EndpointPath string
	Metrics      *metrics.Metrics
	Logger       logging.Logger
}

// DefaultConfig wires the AITable client and tool registry from settings.
func DefaultConfig(settings config.Settings, logger logging.Logger) Config {
	m := metrics.New()
	client := NewAITableClient(settings, m, logger)

	return Config{
		Registry:     tools.NewRegistry(client),
		EndpointPath: settings.HTTPEndpointPath,
		Options:      httpOptions(settings.HTTPEndpointPath),
		Metrics:      m,
		Logger:       logger,
	}
}

// httpOptions configures the streamable HTTP transport. Requests are served
// without sessions.
func httpOptions(endpointPath string) []server.StreamableHTTPOption {
	return []server.StreamableHTTPOption{
		server.WithEndpointPath(endpointPath),
		server.WithStateLess(true),
	}
}

// NewAITableClient builds the API client every entry point uses.
func NewAITableClient(settings config.Settings, m *metrics.Metrics, logger logging.Logger) *aitable.Client {
	if settings.APIKey == "" {
		logger.Info("AITABLE_API_KEY is not set; requests will be rejected by the API")
	}
	return aitable.NewClient(aitable.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Metrics: m,
		Logger:  logger,
	})
}
