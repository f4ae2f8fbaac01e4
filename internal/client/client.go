// Package client talks to the structural analysis service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/report"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, body)
}

// Client is an analysis service client. Requests carry no timeout of their
// own; callers bound them with the context.
type Client struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a client for the service at baseURL
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HttpClient == nil {
		return http.DefaultClient
	}
	return c.HttpClient
}

// do sends in as JSON (when non-nil) and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Submit sends drafted geometry for analysis.
func (c *Client) Submit(ctx context.Context, in SubmitRequest) (*SubmitResponse, error) {
	var out SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/api/analyze", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchSnapshot loads the stored analysis state of one floor.
func (c *Client) FetchSnapshot(ctx context.Context, taskID string, id floor.ID) (*Snapshot, error) {
	path := fmt.Sprintf("/tasks/%s/%s.json", url.PathEscape(taskID), url.PathEscape(string(id)))
	var out Snapshot
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersistEdits replaces a floor's structural elements on the service.
func (c *Client) PersistEdits(ctx context.Context, in UpdateRequest) error {
	return c.do(ctx, http.MethodPut, "/api/analyze/update", in, nil)
}

// PersistSnapshot stores the complete state of a floor for report generation.
func (c *Client) PersistSnapshot(ctx context.Context, taskID string, id floor.ID, snap Snapshot) error {
	snap.TaskID, snap.Floor = taskID, id
	in := SnapshotRequest{TaskID: taskID, Floor: id, Snapshot: snap}
	return c.do(ctx, http.MethodPost, "/api/analyze/save-snapshot", in, nil)
}

// FetchReport loads the computed design model of one floor.
func (c *Client) FetchReport(ctx context.Context, taskID string, id floor.ID) (*report.Data, error) {
	q := url.Values{}
	q.Set("taskId", taskID)
	q.Set("floor", string(id))
	var out report.Data
	if err := c.do(ctx, http.MethodGet, "/api/analyze/report?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ report.Fetcher = (*Client)(nil)
