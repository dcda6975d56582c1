// Package rest implements task.Source over a plain JSON HTTP endpoint.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jask/tasklist/internal/config"
	"github.com/jask/tasklist/internal/task"
)

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// maxSnippet is how many cells of an error body end up in a StatusError.
const maxSnippet = 200

// ErrMalformed wraps every body that is not a JSON array of task records.
var ErrMalformed = errors.New("malformed task list response")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client lists tasks from {base_url}{tasks_path}.
type Client struct {
	http    *http.Client
	url     string
	token   string
	breaker *gobreaker.CircuitBreaker
	log     logrus.FieldLogger
}

// New builds a client from the api section of the config. httpClient may be nil.
func New(cfg config.APIConfig, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	failures := cfg.Breaker.Failures
	if failures == 0 {
		failures = 5
	}
	c := &Client{
		http:  httpClient,
		url:   cfg.TasksURL(),
		token: cfg.Token,
		log:   log.WithField("source", config.BackendREST),
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tasks",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
		},
	})
	return c
}

// ListTasks performs one GET and decodes the whole collection.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]task.Task), nil
}

func (c *Client) fetch(ctx context.Context) ([]task.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"bytes":   len(body),
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	}).Debug("task list response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: ansi.Truncate(strings.ToValidUTF8(string(body), ""), maxSnippet, "")}
	}
	return decodeTasks(body)
}

// wireTask accepts the current field names and the ones older servers send.
type wireTask struct {
	ID             json.RawMessage `json:"id"`
	Title          *string         `json:"title"`
	TaskTitle      *string         `json:"taskTitle"`
	DueDateDisplay *string         `json:"dueDateDisplay"`
	SubtitleField  *string         `json:"subtitleField"`
	Completed      *bool           `json:"completed"`
	IsCompleted    *bool           `json:"isCompleted"`
}

func decodeTasks(body []byte) ([]task.Task, error) {
	var records []wireTask
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if records == nil {
		// "null" is not a collection
		return nil, fmt.Errorf("%w: body is not an array", ErrMalformed)
	}

	tasks := make([]task.Task, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, r := range records {
		id, err := decodeID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: records %d and %d share id %q", ErrMalformed, first, i, id)
		}
		seen[id] = i
		tasks = append(tasks, task.Task{
			ID:             id,
			Title:          firstString(r.Title, r.TaskTitle),
			DueDateDisplay: firstString(r.DueDateDisplay, r.SubtitleField),
			Completed:      firstBool(r.Completed, r.IsCompleted),
		})
	}
	return tasks, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("missing id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", errors.New("empty id")
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id must be a string or number, got %s", raw)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return ""
}

func firstBool(vals ...*bool) bool {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return false
}
