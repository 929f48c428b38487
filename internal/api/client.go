// Package api is the HTTP client for the SAS Agent backend.
//
// Endpoints:
//   - GET    /hello                      connectivity probe
//   - POST   /api/create-agent           create an agent
//   - GET    /api/agents                 list agents
//   - POST   /api/upload                 upload a document (multipart)
//   - POST   /api/chat                   send a chat message
//   - GET    /api/agent/{id}/history     chat history
//   - GET    /api/agent/{id}/documents   uploaded documents
//   - DELETE /api/document/{id}          delete a document
//
// Three error policies coexist. Creation, upload, chat and the per-agent
// calls propagate failures as errors. Ping and ListAgents degrade to a
// safe value and never return an error. No call retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/soyeahso/sasagent/internal/domain"
	"github.com/soyeahso/sasagent/internal/logging"
	"github.com/soyeahso/sasagent/internal/version"
)

// maxResponseSize limits response body reads to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Client talks to one backend.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	token        string
	demoFallback bool
	log          *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithToken sends an Authorization: Bearer header on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithDemoFallback controls whether ListAgents substitutes the demo agent
// when the listing fails. Enabled by default.
func WithDemoFallback(enabled bool) Option {
	return func(c *Client) {
		c.demoFallback = enabled
	}
}

// New creates a client for the backend at baseURL, e.g. "http://127.0.0.1:5000".
func New(baseURL string, log *logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		httpClient:   &http.Client{},
		demoFallback: true,
		log:          log.Sub("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping probes GET /hello. Any failure yields false.
func (c *Client) Ping(ctx context.Context) bool {
	resp, err := c.do(ctx, http.MethodGet, "/hello", nil, "")
	if err != nil {
		c.log.Error().Err(err).Msg("backend connection test failed")
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
	return isSuccess(resp.StatusCode)
}

// CreateAgent creates an agent. A non-2xx response becomes an error whose
// message is the response body text.
func (c *Client) CreateAgent(ctx context.Context, req domain.CreateAgentRequest) (*domain.CreateAgentResult, error) {
	const path = "/api/create-agent"

	resp, body, err := c.doJSON(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, textError(resp, path, body, "Failed to create agent")
	}

	var result domain.CreateAgentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding create-agent response: %w", err)
	}
	c.log.Info().Int64("agent_id", result.AgentID).Str("name", req.Name).Msg("agent created")
	return &result, nil
}

// ListAgents returns the backend's agents. It never fails: on any error the
// demo placeholder list (or an empty list when the fallback is disabled) is
// returned and the cause is logged.
func (c *Client) ListAgents(ctx context.Context) []domain.Agent {
	const path = "/api/agents"

	resp, body, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("listing agents failed, using fallback")
		return c.agentsFallback()
	}
	if !isSuccess(resp.StatusCode) {
		c.log.Warn().Int("status", resp.StatusCode).Msg("agents endpoint not available, using fallback")
		return c.agentsFallback()
	}

	var agents []domain.Agent
	if err := json.Unmarshal(body, &agents); err != nil {
		c.log.Warn().Err(err).Msg("decoding agents failed, using fallback")
		return c.agentsFallback()
	}
	if agents == nil {
		agents = []domain.Agent{}
	}
	return agents
}

func (c *Client) agentsFallback() []domain.Agent {
	if c.demoFallback {
		return domain.DemoAgents()
	}
	return []domain.Agent{}
}

// UploadDocument sends filename and its content as multipart fields
// agent_id and file. The raw response text is returned unparsed.
func (c *Client) UploadDocument(ctx context.Context, agentID int64, filename string, content io.Reader) (string, error) {
	const path = "/api/upload"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("agent_id", strconv.FormatInt(agentID, 10)); err != nil {
		return "", fmt.Errorf("writing agent_id field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}
	if !isSuccess(resp.StatusCode) {
		return "", textError(resp, path, body, "Failed to upload document")
	}

	c.log.Info().Int64("agent_id", agentID).Str("file", filename).Msg("document uploaded")
	return string(body), nil
}

// SendChatMessage asks the agent a question. On failure the message comes
// from the JSON error body, "Unknown error" when the body is not JSON, or
// "Failed to get response" when it carries no error text.
func (c *Client) SendChatMessage(ctx context.Context, agentID int64, query string) (*domain.ChatReply, error) {
	const path = "/api/chat"

	req := domain.ChatRequest{
		AgentID: strconv.FormatInt(agentID, 10),
		Query:   query,
	}
	resp, body, err := c.doJSON(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, jsonError(resp, path, body, "Failed to get response")
	}

	var reply domain.ChatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}
	return &reply, nil
}

// AgentHistory returns the stored exchanges for an agent, oldest first.
func (c *Client) AgentHistory(ctx context.Context, agentID int64) ([]domain.HistoryEntry, error) {
	path := fmt.Sprintf("/api/agent/%d/history", agentID)

	var entries []domain.HistoryEntry
	if err := c.getList(ctx, path, "Failed to fetch chat history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AgentDocuments returns the documents uploaded for an agent, newest first.
func (c *Client) AgentDocuments(ctx context.Context, agentID int64) ([]domain.Document, error) {
	path := fmt.Sprintf("/api/agent/%d/documents", agentID)

	var docs []domain.Document
	if err := c.getList(ctx, path, "Failed to fetch documents", &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument removes a document and its indexed chunks.
func (c *Client) DeleteDocument(ctx context.Context, docID int64) error {
	path := fmt.Sprintf("/api/document/%d", docID)

	resp, body, err := c.doJSON(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if !isSuccess(resp.StatusCode) {
		return jsonError(resp, path, body, "Failed to delete document")
	}
	c.log.Info().Int64("document_id", docID).Msg("document deleted")
	return nil
}

func (c *Client) getList(ctx context.Context, path, fallback string, out any) error {
	resp, body, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if !isSuccess(resp.StatusCode) {
		return jsonError(resp, path, body, fallback)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// doJSON sends payload (when non-nil) as JSON and reads the whole response.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, nil, err
	}
	return resp, data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", reqID).
			Msg("http request failed")
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("http request")
	return resp, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// errorText renders an error member the way string interpolation would:
// strings as-is, null/false/empty as absent, anything else as JSON.
func errorText(v any) string {
	switch e := v.(type) {
	case nil:
		return ""
	case string:
		return e
	case bool:
		if !e {
			return ""
		}
	case float64:
		if e == 0 {
			return ""
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// textError uses the raw body as the message.
func textError(resp *http.Response, path string, body []byte, fallback string) error {
	msg := string(body)
	if msg == "" {
		msg = fallback
	}
	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Method:     resp.Request.Method,
		Path:       path,
		Message:    msg,
	}
}

// jsonError reads the "error" member of a JSON body. A body that is not
// JSON yields "Unknown error". Valid JSON without a usable member yields
// fallback. Non-string members are rendered as JSON text.
func jsonError(resp *http.Response, path string, body []byte, fallback string) error {
	var parsed any
	msg := fallback
	if err := json.Unmarshal(body, &parsed); err != nil {
		msg = "Unknown error"
	} else if obj, ok := parsed.(map[string]any); ok {
		if s := errorText(obj["error"]); s != "" {
			msg = s
		}
	}
	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Method:     resp.Request.Method,
		Path:       path,
		Message:    msg,
	}
}
