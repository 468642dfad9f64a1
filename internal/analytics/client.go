package analytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jask/customerdesk/internal/metrics"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client posts CSV files to the analytics endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a client for the given endpoint URL. A zero timeout
// leaves requests unbounded.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Analyze uploads the CSV read from r as multipart field "file" and returns the
// validated result. requestID is forwarded as X-Request-ID when non-empty.
func (c *Client) Analyze(ctx context.Context, requestID, filename string, r io.Reader) (Result, error) {
	if c == nil {
		return Result{}, transportError("analyze", "analytics client not initialised", 0, nil)
	}
	if c.endpoint == "" {
		return Result{}, transportError("analyze", "analytics endpoint not configured", 0, nil)
	}

	start := time.Now()
	res, err := c.analyze(ctx, requestID, filename, r)
	outcome := metrics.OutcomeSuccess
	switch KindOf(err) {
	case KindMalformed:
		outcome = metrics.OutcomeMalformed
	case KindTransport:
		outcome = metrics.OutcomeTransport
	}
	metrics.ObserveAnalyticsRequest(time.Since(start), outcome)
	c.logger.Debug("analytics request finished",
		"request_id", requestID,
		"file", filename,
		"outcome", outcome,
		"duration", time.Since(start))
	return res, err
}

func (c *Client) analyze(ctx context.Context, requestID, filename string, r io.Reader) (Result, error) {
	body, contentType, err := multipartBody(filename, r)
	if err != nil {
		return Result{}, transportError("analyze", "build multipart body", 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Result{}, transportError("analyze", "build request", 0, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, transportError("analyze", "request failed", 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, transportError("analyze", "read response", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return Result{}, transportError("analyze", "unexpected status", resp.StatusCode, fmt.Errorf("body: %q", snippet))
	}
	return Decode(data)
}

func multipartBody(filename string, r io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
