// Package api provides the authenticated request gateway and typed
// endpoint methods for the practice server.
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
)

// ErrUnauthorized is returned after a 401 response. The stored credential
// has already been cleared when this error is seen; callers route the user
// back to the login view.
var ErrUnauthorized = errors.New("authentication failed")

// StatusError reports a non-2xx response other than 401.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// CredentialStore supplies and clears the bearer credential.
type CredentialStore interface {
	Load() (string, error)
	Clear() error
}

// Client talks to the practice server. All methods except AskAssistant
// attach the stored bearer credential.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   CredentialStore
}

// NewClient creates a Client for the given base URL and credential store.
func NewClient(baseURL string, creds CredentialStore, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// do issues a request against a relative path. When authed is true the
// bearer credential is attached; a 401 clears the credential and fails
// with ErrUnauthorized. Other non-2xx statuses fail with StatusError.
// The decoded JSON body is written into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, err := c.creds.Load()
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnauthorized, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.creds.Clear()
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Problems fetches the problem catalog in server order.
func (c *Client) Problems(ctx context.Context) ([]Problem, error) {
	var problems []Problem
	if err := c.do(ctx, http.MethodGet, "/api/problems", true, nil, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// ExecuteCode submits code for server-side execution against the
// problem's hidden test cases.
func (c *Client) ExecuteCode(ctx context.Context, sub Submission) (*ResultSet, error) {
	var result ResultSet
	if err := c.do(ctx, http.MethodPost, "/api/execute-code", true, sub, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserStats fetches the current user's solve statistics.
func (c *Client) UserStats(ctx context.Context) (*StatsSummary, error) {
	var summary StatsSummary
	if err := c.do(ctx, http.MethodGet, "/api/user-stats", true, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// AskAssistant sends free text to the conversational assistant and
// returns the textual reply. This endpoint is unauthenticated.
func (c *Client) AskAssistant(ctx context.Context, text string) (string, error) {
	var reply assistantResponse
	if err := c.do(ctx, http.MethodPost, "/api/voice-assistant", false, assistantRequest{Text: text}, &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}
