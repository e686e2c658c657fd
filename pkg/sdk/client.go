package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps calls to the SmartPick backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

// SendMessage submits a user utterance and returns the completed turn
func (c *Client) SendMessage(ctx context.Context, text string) (*PostMessageResponse, error) {
	var out ApiResponse[PostMessageResponse]
	req := PostMessageRequest{Text: text}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/message", req, &out); err != nil {
		return nil, err
	}

	if out.Status != StatusSuccess {
		return nil, fmt.Errorf("failed to send message: %s", out.Message)
	}

	return &out.Data, nil
}

// Sessions lists the stored session summaries
func (c *Client) Sessions(ctx context.Context) ([]SessionSummary, error) {
	var out ApiResponse[[]SessionSummary]
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/sessions", nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// Transcript fetches a read-only snapshot of one session's messages
func (c *Client) Transcript(ctx context.Context, index int) ([]TranscriptMessage, error) {
	var out ApiResponse[[]TranscriptMessage]
	path := fmt.Sprintf("/api/chat/sessions/%d", index)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// ClearHistory removes all stored sessions
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/chat/history", nil, nil)
}
