package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jsandbrook/home-maintenance/panel/core"
)

// Client talks JSON over HTTP to the maintenance authority.
type Client struct {
	log  *slog.Logger
	base string
	http *http.Client
}

func NewClient(address string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		log:  log,
		base: strings.TrimRight(address, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// ---- Pinger

func (c *Client) Ping(ctx context.Context) error {
	return c.send(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// ---- Tags

func (c *Client) ListTags(ctx context.Context) ([]core.Tag, error) {
	var out struct {
		Tags []core.Tag `json:"tags"`
	}
	if err := c.send(ctx, http.MethodGet, "/api/tags", nil, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

// ---- Tasks

func (c *Client) ListTasks(ctx context.Context) ([]core.Task, error) {
	var out struct {
		Tasks []core.Task `json:"tasks"`
	}
	if err := c.send(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (core.Task, error) {
	var out core.Task
	if err := c.send(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &out); err != nil {
		return core.Task{}, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, draft core.TaskDraft) error {
	return c.send(ctx, http.MethodPost, "/api/tasks", draft, nil)
}

func (c *Client) CompleteTask(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(id)+"/complete", nil, nil)
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch core.TaskPatch) error {
	return c.send(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), patch, nil)
}

func (c *Client) RemoveTask(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// ---- Metadata

func (c *Client) GetConfig(ctx context.Context) (core.Config, error) {
	var out core.Config
	if err := c.send(ctx, http.MethodGet, "/api/config", nil, &out); err != nil {
		return core.Config{}, err
	}
	return out, nil
}

func (c *Client) ListRegistryEntries(ctx context.Context) ([]core.RegistryEntry, error) {
	var out struct {
		Entries []core.RegistryEntry `json:"entries"`
	}
	if err := c.send(ctx, http.MethodGet, "/api/registry", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (c *Client) ListLabels(ctx context.Context) ([]core.Label, error) {
	var out struct {
		Labels []core.Label `json:"labels"`
	}
	if err := c.send(ctx, http.MethodGet, "/api/labels", nil, &out); err != nil {
		return nil, err
	}
	return out.Labels, nil
}

var _ core.Authority = (*Client)(nil)

// ---- helpers

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("new request %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatusErr(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func mapTransportErr(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return core.ErrUnavailable
	case errors.As(err, &netErr):
		return core.ErrUnavailable
	default:
		return err
	}
}

func mapStatusErr(resp *http.Response) error {
	msg := readErrMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusConflict:
		if msg != "" {
			return fmt.Errorf("%w: %s", core.ErrBadRequest, msg)
		}
		return core.ErrBadRequest
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return core.ErrUnavailable
	default:
		return fmt.Errorf("authority returned %s: %s", resp.Status, msg)
	}
}

func readErrMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
