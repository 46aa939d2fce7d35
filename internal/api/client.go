// Package api is the REST client for the education platform backend. All
// reads return raw records; decoding into the canonical model happens in the
// normalize package, never here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/practica-app/practica/internal/domain"
	"github.com/practica-app/practica/internal/normalize"
	"github.com/practica-app/practica/internal/session"
)

// Error is a non-2xx backend response.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Body)
}

// Config holds settings for the backend client.
type Config struct {
	BaseURL string
	Token   string       // bearer token; empty for anonymous endpoints
	Guard   *GuardConfig // nil means DefaultGuardConfig
}

// Client talks to the backend over JSON/HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	guard      *guard // resilience wrapper around every request
}

// NewClient creates a backend client with default resilience settings.
func NewClient(cfg Config) *Client {
	guardCfg := DefaultGuardConfig()
	if cfg.Guard != nil {
		guardCfg = *cfg.Guard
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: newBackendHTTPClient(),
		guard:      newGuard(guardCfg),
	}
}

// Exercises lists all exercise records.
func (c *Client) Exercises(ctx context.Context) ([]normalize.Raw, error) {
	var out []normalize.Raw
	if err := c.getJSON(ctx, "/exercises", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Exercise fetches one raw exercise record.
func (c *Client) Exercise(ctx context.Context, id int) (normalize.Raw, error) {
	var out normalize.Raw
	if err := c.getJSON(ctx, fmt.Sprintf("/exercises/%d", id), &out); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrExerciseNotFound
		}
		return nil, err
	}
	return out, nil
}

// ExerciseQuestions fetches question records already scoped to an exercise.
func (c *Client) ExerciseQuestions(ctx context.Context, id int) ([]normalize.Raw, error) {
	var out []normalize.Raw
	if err := c.getJSON(ctx, fmt.Sprintf("/exercises/%d/questions", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllQuestions fetches every question record system-wide. Last-resort
// fallback only; each record carries a contentId or exerciseId foreign key.
func (c *Client) AllQuestions(ctx context.Context) ([]normalize.Raw, error) {
	var out []normalize.Raw
	if err := c.getJSON(ctx, "/questions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LanguageName resolves a language id to its display name.
func (c *Client) LanguageName(ctx context.Context, id int) (string, error) {
	var out struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/languages/%d", id), &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

// SubmitResult posts a finalized attempt's answers and score. Returns the
// backend's submission id, consumed later by the analysis poller.
func (c *Client) SubmitResult(ctx context.Context, exerciseID int, answers map[int]string, result session.Result) (string, error) {
	payload := struct {
		Answers map[int]string `json:"answers"`
		Score   session.Result `json:"score"`
	}{Answers: answers, Score: result}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal submission: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/exercises/%d/submissions", exerciseID), body)
	if err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode submission ack: %w", err)
	}
	return out.ID, nil
}

// Analysis fetches the AI feedback for a submission. An analysis that is
// still being generated is reported as domain.ErrAnalysisPending.
func (c *Client) Analysis(ctx context.Context, submissionID string) (*domain.Analysis, error) {
	var out domain.Analysis
	err := c.getJSON(ctx, fmt.Sprintf("/submissions/%s/analysis", submissionID), &out)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, err
	}
	if !out.Ready {
		return nil, domain.ErrAnalysisPending
	}
	out.SubmissionID = submissionID
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs one request through the resilience guard and returns the
// response body.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	return c.guard.execute(ctx, path, func(ctx context.Context) ([]byte, error) {
		return c.roundTrip(ctx, method, path, body)
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
