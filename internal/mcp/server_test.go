package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/aitable-mcp/internal/aitable"
	"github.com/roivaz/aitable-mcp/internal/config"
	"github.com/roivaz/aitable-mcp/internal/logging"
	"github.com/roivaz/aitable-mcp/internal/mcp/tools"
	"github.com/roivaz/aitable-mcp/internal/metrics"
)

func newTestServer(t *testing.T, upstream http.Handler) *Server {
	t.Helper()
	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	m := metrics.New()
	client := aitable.NewClient(aitable.Config{
		APIKey:     "usk-test",
		BaseURL:    api.URL,
		HTTPClient: api.Client(),
		Fs:         afero.NewMemMapFs(),
		Metrics:    m,
	})
	return New(Config{
		Registry:     tools.NewRegistry(client),
		Options:      httpOptions("/mcp"),
		EndpointPath: "/mcp",
		Metrics:      m,
		Logger:       logging.Discard(),
	})
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func send(t *testing.T, s *Server, message string) rpcResponse {
	t.Helper()
	out := s.MCP.HandleMessage(context.Background(), json.RawMessage(message))
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var resp rpcResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	resp := send(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Nil(t, resp.Error)

	var result struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.ElementsMatch(t, s.Registry.Names(), names)
}

func TestToolsCallAddRecord(t *testing.T) {
	var gotBody string
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/fusion/v1/datasheets/dst123/records", r.URL.Path)
		assert.Equal(t, "Bearer usk-test", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, `{"success":true,"code":200,"data":{"records":[{"recordId":"rec1"}]}}`)
	})
	s := newTestServer(t, upstream)

	resp := send(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"add_record","arguments":{"datasheet_id":"dst123","fields":{"Name":"Alice"}}}}`)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"records":[{"fields":{"Name":"Alice"}}]}`, gotBody)

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.JSONEq(t, `{"success":true,"code":200,"data":{"records":[{"recordId":"rec1"}]}}`, result.Content[0].Text)
}

func TestToolsCallDeleteEmptyBody(t *testing.T) {
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	})
	s := newTestServer(t, upstream)

	resp := send(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"delete_record","arguments":{"datasheet_id":"dst123","record_id":"rec456"}}}`)
	require.Nil(t, resp.Error)

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Content, 1)
	assert.JSONEq(t, `{"status":200}`, result.Content[0].Text)
}

func TestRouterHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())
	srv := httptest.NewServer(s.Handler)
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metricsResp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(config.Settings{
		BaseURL:          config.DefaultBaseURL,
		Transport:        config.TransportHTTP,
		HTTPEndpointPath: "/mcp",
	}, logging.Discard())

	assert.Equal(t, "/mcp", cfg.EndpointPath)
	assert.NotNil(t, cfg.Metrics)
	assert.Len(t, cfg.Registry.Names(), 5)
	assert.Len(t, cfg.Options, 2)
}

func TestHTTPTransportToolsCall(t *testing.T) {
	var gotAuth string
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/fusion/v1/datasheets/dst123/records", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":{"records":[]}}`)
	})
	s := newTestServer(t, upstream)
	srv := httptest.NewServer(s.Handler)
	t.Cleanup(srv.Close)

	body := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"get_table_records","arguments":{"datasheet_id":"dst123"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/mcp", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var rpc rpcResponse
	require.NoError(t, json.Unmarshal(raw, &rpc))
	require.Nil(t, rpc.Error)

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(rpc.Result, &result))
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.JSONEq(t, `{"success":true,"data":{"records":[]}}`, result.Content[0].Text)
	assert.Equal(t, "Bearer usk-test", gotAuth)
}

func TestNewAITableClientUsesSettings(t *testing.T) {
	c := NewAITableClient(config.Settings{APIKey: "usk-test", BaseURL: "https://example.aitable.test/"}, metrics.New(), logging.Discard())
	assert.Equal(t, "https://example.aitable.test", c.BaseURL())
}
