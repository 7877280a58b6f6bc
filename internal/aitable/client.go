// Package aitable is a client for the record and attachment endpoints of the
// AITable Fusion API v1.
//
// Every call is one HTTP request. Requests are authenticated with a static
// bearer token; the token is sent even when empty, in which case the remote
// service rejects the call. Responses are decoded and handed back verbatim,
// including error payloads returned with a non-2xx status. Nothing is retried.
//
// URL layout:
//
//	{base}/fusion/v1/datasheets/{datasheetId}/records
//	{base}/fusion/v1/datasheets/{datasheetId}/records/{recordId}
//	{base}/fusion/v1/datasheets/{datasheetId}/attachments/upload
//
// A Client is safe for concurrent use.
package aitable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"

	"github.com/roivaz/aitable-mcp/internal/logging"
	"github.com/roivaz/aitable-mcp/internal/metrics"
)

// Operation names, shared with the tool registry and used as metric labels.
const (
	OpListRecords      = "get_table_records"
	OpAddRecord        = "add_record"
	OpUpdateRecord     = "update_record"
	OpDeleteRecord     = "delete_record"
	OpUploadAttachment = "upload_attachment"
)

const (
	DefaultBaseURL = "https://api.aitable.ai"

	datasheetsPath  = "/fusion/v1/datasheets/"
	contentTypeJSON = "application/json"
	userAgent       = "aitable-mcp"
)

// Fields maps field names to JSON-compatible values. It is sent verbatim.
type Fields map[string]any

type Config struct {
	APIKey  string
	BaseURL string
	// HTTPClient supplies the base transport and timeout. Defaults to
	// http.DefaultTransport with no timeout.
	HTTPClient *http.Client
	// Fs is where attachment files are read from. Defaults to the OS
	// filesystem.
	Fs      afero.Fs
	Metrics *metrics.Metrics
	Logger  logging.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	fs      afero.Fs
	metrics *metrics.Metrics
	log     logging.Logger
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	var (
		transport http.RoundTripper
		timeout   time.Duration
	)
	if cfg.HTTPClient != nil {
		transport = cfg.HTTPClient.Transport
		timeout = cfg.HTTPClient.Timeout
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey})

	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := cfg.Logger
	if log.Logr().GetSink() == nil {
		log = logging.Discard()
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Transport: &oauth2.Transport{Source: ts, Base: transport},
			Timeout:   timeout,
		},
		fs:      fs,
		metrics: cfg.Metrics,
		log:     log.WithName("aitable"),
	}
}

// BaseURL returns the endpoint the client talks to, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListRecords fetches the records of a datasheet.
func (c *Client) ListRecords(ctx context.Context, datasheetID string) (any, error) {
	return c.do(ctx, apiRequest{
		operation: OpListRecords,
		method:    http.MethodGet,
		url:       c.recordsURL(datasheetID),
	})
}

// AddRecord creates one record holding fields.
func (c *Client) AddRecord(ctx context.Context, datasheetID string, fields Fields) (any, error) {
	payload := addRecordsRequest{Records: []recordFields{{Fields: orEmpty(fields)}}}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", OpAddRecord, err)
	}
	return c.do(ctx, apiRequest{
		operation:   OpAddRecord,
		method:      http.MethodPost,
		url:         c.recordsURL(datasheetID),
		body:        bytes.NewReader(body),
		contentType: contentTypeJSON,
	})
}

// UpdateRecord patches one record. Fields not named are left to the remote
// service's partial update semantics.
func (c *Client) UpdateRecord(ctx context.Context, datasheetID, recordID string, fields Fields) (any, error) {
	body, err := json.Marshal(recordFields{Fields: orEmpty(fields)})
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", OpUpdateRecord, err)
	}
	return c.do(ctx, apiRequest{
		operation:   OpUpdateRecord,
		method:      http.MethodPatch,
		url:         c.recordURL(datasheetID, recordID),
		body:        bytes.NewReader(body),
		contentType: contentTypeJSON,
	})
}

// DeleteRecord removes one record. An empty response body yields
// {"status": <code>}.
func (c *Client) DeleteRecord(ctx context.Context, datasheetID, recordID string) (any, error) {
	return c.do(ctx, apiRequest{
		operation:   OpDeleteRecord,
		method:      http.MethodDelete,
		url:         c.recordURL(datasheetID, recordID),
		contentType: contentTypeJSON,
		allowEmpty:  true,
	})
}

// UploadAttachment sends the file at filePath as multipart field "file". The
// file is read fully before the request is built.
func (c *Client) UploadAttachment(ctx context.Context, datasheetID, filePath string) (any, error) {
	data, err := afero.ReadFile(c.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("read attachment %q: %w", filePath, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	return c.do(ctx, apiRequest{
		operation:   OpUploadAttachment,
		method:      http.MethodPost,
		url:         c.attachmentsURL(datasheetID),
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
}

func (c *Client) recordsURL(datasheetID string) string {
	return c.baseURL + datasheetsPath + url.PathEscape(datasheetID) + "/records"
}

func (c *Client) recordURL(datasheetID, recordID string) string {
	return c.recordsURL(datasheetID) + "/" + url.PathEscape(recordID)
}

func (c *Client) attachmentsURL(datasheetID string) string {
	return c.baseURL + datasheetsPath + url.PathEscape(datasheetID) + "/attachments/upload"
}

type apiRequest struct {
	operation   string
	method      string
	url         string
	body        io.Reader
	contentType string
	// allowEmpty turns an empty body into a {"status": code} result.
	allowEmpty bool
}

func (c *Client) do(ctx context.Context, r apiRequest) (any, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", r.operation, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", userAgent)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(r.operation, 0, time.Since(start))
		c.log.Error(err, "aitable request failed", "operation", r.operation, "method", r.method, "url", r.url)
		return nil, fmt.Errorf("%s request: %w", r.operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.metrics.ObserveRequest(r.operation, resp.StatusCode, elapsed)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", r.operation, err)
	}

	kv := append([]any{
		"operation", r.operation,
		"method", r.method,
		"url", r.url,
		"status", resp.StatusCode,
		"duration", elapsed,
	}, envelopeValues(body)...)
	if rejected(body) {
		c.log.Info("aitable reported failure", kv...)
	} else {
		c.log.Debug("aitable request completed", kv...)
	}

	if r.allowEmpty && len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{"status": resp.StatusCode}, nil
	}
	return decodeBody(resp.StatusCode, body)
}

type recordFields struct {
	Fields Fields `json:"fields"`
}

type addRecordsRequest struct {
	Records []recordFields `json:"records"`
}

func orEmpty(fields Fields) Fields {
	if fields == nil {
		return Fields{}
	}
	return fields
}
