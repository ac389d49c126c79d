package preorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

const failedToSubmit = "Failed to submit preorder"

// Path is the route pre-orders are posted to.
const Path = "/api/preorders"

// Client submits pre-orders to a showroom server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	pending    atomic.Bool
}

// NewClient returns a client for baseURL with a 30s timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Pending reports whether a submission is in flight.
func (c *Client) Pending() bool {
	return c.pending.Load()
}

// Submit validates in locally and posts it. Invalid input never reaches the
// network. While one submission is outstanding, further calls return
// ErrPending.
func (c *Client) Submit(ctx context.Context, in Input) (*Preorder, error) {
	in, err := Validate(in)
	if err != nil {
		return nil, err
	}
	if !c.pending.CompareAndSwap(false, true) {
		return nil, ErrPending
	}
	defer c.pending.Store(false)

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode preorder: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("preorder request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		var er ErrorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&er); err != nil || er.Message == "" {
			return nil, &ServerError{Status: resp.StatusCode, Message: failedToSubmit}
		}
		return nil, &ValidationError{Field: er.Field, Message: er.Message}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &ServerError{Status: resp.StatusCode, Message: failedToSubmit}
	}

	var p Preorder
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&p); err != nil {
		return nil, &ServerError{Status: resp.StatusCode, Message: failedToSubmit}
	}
	return &p, nil
}
