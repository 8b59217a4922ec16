package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/suds-dev/suds/internal/cli/auth"
)

const requestTimeout = 30 * time.Second

// Client is the HTTP access layer for the Suds store API. Every request
// carries the persisted bearer token when one exists, and every response is
// inspected for authentication expiry: a 401 from any endpoint invalidates
// the session through the registered handler.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         auth.TokenStore
	onUnauthorized func()
}

// New creates a new API client for the given server URL.
func New(serverURL string, tokens auth.TokenStore) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		tokens: tokens,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// OnUnauthorized registers the handler invoked when any request comes back
// 401. The session store registers its invalidate operation here so that
// the persisted token and the in-memory session change together.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// serverMessage is the error body shape used by the store API.
type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (m serverMessage) text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

// do dispatches a single request. body is JSON-encoded when non-nil; out is
// JSON-decoded from a 2xx response when non-nil. Never retries.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, err := c.tokens.LoadToken(c.baseURL); err == nil && token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	requestID := ulid.Make().String()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().
			Str("requestID", requestID).
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("request failed without a response")
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("requestID", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("request completed")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	var msg serverMessage
	_ = json.Unmarshal(respBody, &msg)

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate()
	}

	return &Error{Status: resp.StatusCode, Message: msg.text()}
}

// invalidate reacts to an authentication failure. The registered handler
// clears both the persisted token and the in-memory session in one step;
// when the client is used without a session store, only the token can be
// cleared here.
func (c *Client) invalidate() {
	if c.onUnauthorized != nil {
		c.onUnauthorized()
		return
	}
	if err := c.tokens.DeleteToken(c.baseURL); err != nil && !errors.Is(err, auth.ErrNoToken) {
		log.Warn().Err(err).Msg("failed to delete token after 401")
	}
}
