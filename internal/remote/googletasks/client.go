// Package googletasks implements task.Source on top of the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/jask/tasklist/internal/config"
	"github.com/jask/tasklist/internal/task"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks requested per page.
	PageSize = 100

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// NoDue is shown for tasks without a due date.
	NoDue = "-"

	tasksScope = "https://www.googleapis.com/auth/tasks.readonly"
)

// Client lists the tasks of one Google task list.
type Client struct {
	svc        *tasks.Service
	listID     string
	dateFormat string
	log        logrus.FieldLogger
}

// New creates a client from oauth_client.json and token.json in the
// configured credentials directory.
func New(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*Client, error) {
	dir := cfg.Google.CredentialsDir
	clientJSON, err := os.ReadFile(filepath.Join(dir, OAuthClientFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", OAuthClientFile, err)
	}

	tokenData, err := os.ReadFile(filepath.Join(dir, TokenFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))
	httpClient.Timeout = cfg.API.Timeout
	return NewWithHTTPClient(ctx, cfg, httpClient, log)
}

// NewWithHTTPClient creates a client with a custom HTTP client. Extra options
// (such as an endpoint override) are passed to the generated service.
func NewWithHTTPClient(ctx context.Context, cfg config.Config, httpClient *http.Client, log logrus.FieldLogger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	listID := cfg.Google.ListID
	if listID == "" {
		listID = DefaultListID
	}
	dateFormat := cfg.UI.DateFormat
	if dateFormat == "" {
		dateFormat = time.DateOnly
	}
	return &Client{
		svc:        svc,
		listID:     listID,
		dateFormat: dateFormat,
		log:        log.WithField("source", config.BackendGoogleTasks),
	}, nil
}

// ListTasks returns every task of the list, completed ones included, in API order.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	result := []task.Task{}
	pages := 0
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			pages++
			for _, t := range resp.Items {
				result = append(result, c.convert(t))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	c.log.WithFields(logrus.Fields{"pages": pages, "tasks": len(result)}).Debug("google task list fetched")
	return result, nil
}

func (c *Client) convert(t *tasks.Task) task.Task {
	return task.Task{
		ID:             t.Id,
		Title:          t.Title,
		DueDateDisplay: c.formatDue(t.Due),
		Completed:      t.Status == "completed",
	}
}

// formatDue renders the RFC 3339 due timestamp. Google stores due dates at
// midnight UTC, so the date is taken in UTC.
func (c *Client) formatDue(due string) string {
	if due == "" {
		return NoDue
	}
	ts, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return due
	}
	return ts.UTC().Format(c.dateFormat)
}

func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token expired or revoked: %w", err)
		case http.StatusNotFound:
			return fmt.Errorf("task list not found: %w", err)
		}
	}
	return err
}
