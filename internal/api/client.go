// Package api is the HTTP client for the Dingo marketing backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/observability"
)

// DefaultBaseURL is the versioned API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// Client calls the backend's fixed REST endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Response is a successful backend reply.
type Response struct {
	StatusCode int
	Body       any
	Raw        []byte
}

// Object returns the body as a JSON object, or nil when it is another shape.
func (r *Response) Object() map[string]any {
	if r == nil {
		return nil
	}
	obj, _ := r.Body.(map[string]any)
	return obj
}

// Submit posts payload to the endpoint mapped from op.
func (c *Client) Submit(ctx context.Context, op core.Operation, payload any) (*Response, error) {
	path, ok := op.Endpoint()
	if !ok {
		return nil, core.NewError(core.ErrorUnknownOperation, "Unknown operation type", nil)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, core.NewError(core.ErrorValidation, fmt.Sprintf("encode request: %v", err), err)
	}

	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body))
}

// Status performs the health probe.
func (c *Client) Status(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, core.StatusPath, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reqURL, err := c.resolve(path)
	if err != nil {
		return nil, core.NewError(core.ErrorNetwork, fmt.Sprintf("invalid API base URL: %v", err), err)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, core.NewError(core.ErrorNetwork, err.Error(), err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, core.NewError(core.ErrorNetwork, fmt.Sprintf("network error: %v", err), err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// The status line arrived, so this is no longer a connection failure:
		// an error status stays an HTTP error, a truncated success is unparseable.
		kind := core.ErrorParse
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			kind = core.ErrorHTTP
		}
		return nil, &core.Error{
			Kind:       kind,
			Message:    fmt.Sprintf("read response: %v", err),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &core.Error{
			Kind:       core.ErrorHTTP,
			Message:    ErrorMessage(resp.StatusCode, raw),
			StatusCode: resp.StatusCode,
		}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &core.Error{
			Kind:       core.ErrorParse,
			Message:    fmt.Sprintf("invalid response body: %v", err),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: decoded, Raw: raw}, nil
}

func (c *Client) resolve(path string) (string, error) {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", base)
	}
	return strings.TrimRight(parsed.String(), "/") + path, nil
}

// ErrorMessage resolves the user-facing message for a non-success response:
// detail, then message, then a bare JSON string body, then a generic line.
func ErrorMessage(statusCode int, raw []byte) string {
	generic := fmt.Sprintf("request failed with status %d", statusCode)

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		if observability.CLILogger != nil {
			observability.CLILogger.Debug("Error response body is not JSON",
				zap.Int("status", statusCode),
				zap.Error(err))
		}
		return generic
	}

	switch v := decoded.(type) {
	case map[string]any:
		for _, key := range []string{"detail", "message"} {
			if msg, ok := messageValue(v[key]); ok {
				return msg
			}
		}
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return generic
}

// messageValue accepts strings as-is and serializes structured values such as
// validation detail lists.
func messageValue(v any) (string, bool) {
	switch typed := v.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(typed) == "" {
			return "", false
		}
		return typed, true
	case bool:
		if !typed {
			return "", false
		}
	case float64:
		if typed == 0 {
			return "", false
		}
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}
