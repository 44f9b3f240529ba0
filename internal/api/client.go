package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL matches the development server. Production deployments set
// the base URL via flag/env/config; this is the single place it defaults.
const DefaultBaseURL = "http://localhost:5000/api"

// Client is a thin JSON client for the marketplace API. The bearer token is
// owned by the session store (its single writer); Client only attaches
// whatever token is current at the moment a request is built, which gives
// the dispatch-time credential guarantee.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

func New(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// SetToken installs (or clears, with "") the bearer token used for
// authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = strings.TrimSpace(token)
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one JSON round-trip. A non-2xx response is mapped onto the
// error taxonomy with the server's message attached when the body has one.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindNetworkOrServer, Message: fmt.Sprintf("encoding request: %v", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindNetworkOrServer, Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		tok := c.currentToken()
		if tok == "" {
			// Should not happen: controllers gate on session presence
			// before dispatch. Fail the same way the server would.
			return &Error{Kind: KindAuthRequired}
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetworkOrServer, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetworkOrServer, Status: resp.StatusCode, Message: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBytes)
	}

	if out != nil && len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return &Error{Kind: KindNetworkOrServer, Status: resp.StatusCode, Message: fmt.Sprintf("decoding response: %v", err)}
		}
	}
	return nil
}

func decodeError(status int, body []byte) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	msg := strings.TrimSpace(eb.Message)
	if msg == "" {
		msg = strings.TrimSpace(eb.Error)
	}

	kind := KindNetworkOrServer
	switch status {
	case http.StatusBadRequest:
		kind = KindValidation
	case http.StatusUnauthorized:
		kind = KindAuthRequired
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	}
	return &Error{Kind: kind, Status: status, Message: msg}
}
