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
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	defaultTimeout = 12 * time.Second
)

// Credentials is the session side of the gateway: it supplies the bearer
// token and is told when the backend rejected it.
type Credentials interface {
	Token() string
	Expire(ctx context.Context)
}

// Client talks to the Fitnessify backend. Every authenticated call goes
// through AuthenticatedRequest.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Credentials Credentials
	Logger      *zap.Logger
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return c.HTTPClient
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// AuthenticatedRequest sends one request with the current bearer token
// attached, if any. A 401 clears the session and yields ErrAuthExpired; the
// caller owns the returned response body otherwise.
func (c *Client) AuthenticatedRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	token := ""
	if c.Credentials != nil {
		token = c.Credentials.Token()
	}
	resp, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		c.logger().Warn("backend rejected token, forcing logout",
			zap.String("method", method), zap.String("path", path))
		if c.Credentials != nil {
			c.Credentials.Expire(ctx)
		}
		return nil, ErrAuthExpired
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger().Debug("request failed",
			zap.String("request_id", requestID), zap.String("method", method),
			zap.String("path", path), zap.Error(err))
		return nil, &RequestError{Op: method + " " + path, Err: err}
	}
	c.logger().Debug("request completed",
		zap.String("request_id", requestID), zap.String("method", method),
		zap.String("path", path), zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// call is the JSON round trip shared by every endpoint. in may be nil; out
// may be nil when the response body is not needed.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	body, err := encodeBody(in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	resp, err := c.AuthenticatedRequest(ctx, method, path, body)
	if err != nil {
		return wrapOp(op, err)
	}
	return decodeResponse(op, resp, out)
}

// callPublic skips the gateway: login, register and explicit token checks
// must not trigger a forced logout on 401.
func (c *Client) callPublic(ctx context.Context, op, method, path, token string, in, out any) error {
	body, err := encodeBody(in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return wrapOp(op, err)
	}
	return decodeResponse(op, resp, out)
}

func encodeBody(in any) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(payload), nil
}

func decodeResponse(op string, resp *http.Response, out any) error {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Op: op, Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		return body.Message
	}
	return ""
}

func wrapOp(op string, err error) error {
	if re, ok := err.(*RequestError); ok {
		re.Op = op
		return re
	}
	return fmt.Errorf("%s: %w", op, err)
}
