package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/aitable-mcp/internal/logging"
	"github.com/roivaz/aitable-mcp/internal/mcp/tools"
	"github.com/roivaz/aitable-mcp/internal/metrics"
)

const (
	serverName    = "aitable-mcp"
	serverVersion = "1.0.0"
)

type Server struct {
	MCP      *server.MCPServer
	HTTP     *server.StreamableHTTPServer
	Handler  http.Handler
	Registry *tools.Registry
	Metrics  *metrics.Metrics
}

func New(cfg Config) *Server {
	log := cfg.Logger.WithName("mcp")

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(logToolCalls(log)),
	)

	for _, def := range cfg.Registry.Definitions() {
		adapter := def.Adapter
		mcpServer.AddTool(def.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:      mcpServer,
		HTTP:     httpServer,
		Handler:  newRouter(cfg.EndpointPath, httpServer, cfg.Metrics),
		Registry: cfg.Registry,
		Metrics:  cfg.Metrics,
	}
}

func newRouter(endpointPath string, mcpHandler http.Handler, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	r.Handle(endpointPath, mcpHandler)
	return r
}

func logToolCalls(log logging.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			res, err := next(ctx, req)
			kv := []any{"tool", req.Params.Name, "duration", time.Since(start)}
			switch {
			case err != nil:
				log.Error(err, "tool call failed", kv...)
			case res != nil && res.IsError:
				log.Info("tool call rejected", kv...)
			default:
				log.Debug("tool call completed", kv...)
			}
			return res, err
		}
	}
}
