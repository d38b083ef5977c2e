package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// DefaultHistoryLimit caps how many entries the backend returns per
// read when the caller does not ask for a specific limit.
const DefaultHistoryLimit = 50

// Client talks to the PirizGPT chat backend. All durable session state
// lives server-side; the client performs no caching, every call
// re-fetches.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListSessions returns the sessions known to the backend, most recently
// active first. limit <= 0 uses the server default.
func (c *Client) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	endpoint := c.baseURL + "/history/sessions"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building sessions request: %w", err)
	}

	var payload struct {
		Sessions []struct {
			ID              string `json:"id"`
			Title           string `json:"title"`
			LastMessageTime string `json:"last_message_time"`
		} `json:"sessions"`
	}
	if err := c.getJSON(req, &payload); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(payload.Sessions))
	for _, s := range payload.Sessions {
		sessions = append(sessions, Session{
			ID:              s.ID,
			Title:           s.Title,
			LastMessageTime: parseSessionTime(s.LastMessageTime),
		})
	}
	return sessions, nil
}

// History returns the ordered transcript of one session, oldest first.
// limit <= 0 uses DefaultHistoryLimit.
func (c *Client) History(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := url.Values{}
	query.Set("session_id", sessionID)
	query.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/history?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building history request: %w", err)
	}

	var payload struct {
		History []struct {
			Role    string `json:"role"`
			Message string `json:"message"`
		} `json:"history"`
	}
	if err := c.getJSON(req, &payload); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(payload.History))
	for _, entry := range payload.History {
		messages = append(messages, Message{
			Role:    entry.Role,
			Content: entry.Message,
		})
	}
	return messages, nil
}

// ClearSession deletes all messages of a session on the backend. Only
// the response status matters; the body carries no contract.
func (c *Client) ClearSession(ctx context.Context, sessionID string) error {
	body, err := json.Marshal(map[string]string{"session_id": sessionID})
	if err != nil {
		return fmt.Errorf("encoding clear request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/history/clear", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building clear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("clearing session: server returned %s", resp.Status)
	}
	return nil
}

// Send posts a message to the non-streaming chat endpoint and returns
// the whole reply at once. Used when streaming is disabled.
func (c *Client) Send(ctx context.Context, message, sessionID string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"message":    message,
		"session_id": sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := c.getJSON(req, &payload); err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", fmt.Errorf("chat request failed: %s", payload.Error)
	}
	return payload.Response, nil
}

// getJSON executes a request and decodes a JSON response body into out.
func (c *Client) getJSON(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("requesting %s: server returned %s", req.URL.Path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}
