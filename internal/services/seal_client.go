package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/google/uuid"
)

const (
	sealTokenHeader          = "X-Seal-Token"
	defaultSealResponseLimit = 10 << 20
)

// CredentialSource supplies the Seal token at call time.
type CredentialSource interface {
	SealCredential() (string, error)
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is the uniform result of every Seal call. Body always holds valid
// JSON: the upstream document, {} when it failed to parse, or
// {"non_json": "<text>"} for non-JSON content types.
type Response struct {
	OK     bool
	Status int
	Body   json.RawMessage
}

func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

type SealClient struct {
	baseURL      string
	credentials  CredentialSource
	httpClient   HTTPDoer
	maxBodyBytes int64
}

func NewSealClient(cfg *config.Config) *SealClient {
	return NewSealClientWith(cfg.SealBaseURL, cfg, &http.Client{Timeout: cfg.SealTimeout})
}

func NewSealClientWith(baseURL string, credentials CredentialSource, httpClient HTTPDoer) *SealClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &SealClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		credentials:  credentials,
		httpClient:   httpClient,
		maxBodyBytes: defaultSealResponseLimit,
	}
}

// Endpoint returns the absolute URL for an API path.
func (c *SealClient) Endpoint(path string) string {
	return c.baseURL + path
}

// Call performs one request against the Seal merchant API. Non-2xx statuses
// are reported through Response.OK; only configuration and transport faults
// are returned as errors.
func (c *SealClient) Call(ctx context.Context, method, path string, body any, headers map[string]string) (*Response, error) {
	token, err := c.credentials.SealCredential()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	var rawBody []byte
	if body != nil {
		rawBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode seal request body: %w", err)
		}
		reqBody = bytes.NewReader(rawBody)
	}

	url := c.Endpoint(path)
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build seal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(sealTokenHeader, token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	logger := slog.With("request_id", requestID, "method", method, "path", path)
	logger.Debug("seal request", "body", string(rawBody))

	startedAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("seal request failed", "error", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		logger.Error("seal response read failed", "status", resp.StatusCode, "error", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}

	out := &Response{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Body:   normalizeBody(resp.Header.Get("Content-Type"), raw),
	}

	logger.Info("seal response", "status", out.Status, "ok", out.OK, "latency_ms", time.Since(startedAt).Milliseconds())
	logger.Debug("seal response body", "body", string(out.Body))
	return out, nil
}

func normalizeBody(contentType string, raw []byte) json.RawMessage {
	if strings.Contains(contentType, "application/json") {
		if len(bytes.TrimSpace(raw)) == 0 || !json.Valid(raw) {
			return json.RawMessage(`{}`)
		}
		return json.RawMessage(raw)
	}
	wrapped, _ := json.Marshal(map[string]string{"non_json": string(raw)})
	return json.RawMessage(wrapped)
}
