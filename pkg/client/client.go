// Package client calls the planning API that owns teams, employees, products,
// production sessions and optimization runs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/planning-view-go/internal/config"
	"github.com/arnavshah/planning-view-go/internal/metrics"
	"github.com/arnavshah/planning-view-go/pkg/models"
)

// APIError is a non-2xx answer of the planning API
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("planning api %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("planning api %s %s: status %d", e.Method, e.Path, e.Status)
}

// IsAPIError reports whether err carries an upstream answer
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Client calls the planning API. It is safe for concurrent use.
type Client struct {
	BaseURL    string       // e.g. "http://localhost:8080"
	APIKey     string       // optional; sent as a bearer token
	HTTPClient *http.Client // optional; nil uses http.DefaultClient

	// Timeout bounds calls whose context has no deadline. Zero means no bound.
	Timeout time.Duration
}

// New returns a client for the given base URL
func New(baseURL, apiKey string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey}
}

// FromConfig returns a client with the configured base URL, key and timeout
func FromConfig(cfg config.PlanningConfig) *Client {
	c := New(cfg.BaseURL, cfg.APIKey)
	c.Timeout = cfg.Timeout
	return c
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	return c.client().Do(req)
}

// doJSON sends the request and decodes a 2xx body into out. endpoint is the
// path template used as the metrics label.
func (c *Client) doJSON(ctx context.Context, method, endpoint, path string, body any, out any) error {
	ctx, cancel := withDefaultTimeout(ctx, c.Timeout)
	defer cancel()

	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		metrics.RecordUpstream(endpoint, 0)
		return fmt.Errorf("planning api %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordUpstream(endpoint, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		apiErr.Message = errBody.Error
		if apiErr.Message == "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, path, nil, out)
}

// ListTeams returns every team
func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	var out []models.Team
	err := c.get(ctx, "/api/v1/teams", "/api/v1/teams", &out)
	return out, err
}

// ListEmployees returns every employee
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := c.get(ctx, "/api/v1/employees", "/api/v1/employees", &out)
	return out, err
}

// ListEmployeesByTeam returns the employees of one team
func (c *Client) ListEmployeesByTeam(ctx context.Context, teamID int64) ([]models.Employee, error) {
	var out []models.Employee
	path := "/api/v1/employees/team/" + strconv.FormatInt(teamID, 10)
	err := c.get(ctx, "/api/v1/employees/team/{id}", path, &out)
	return out, err
}

// ListProducts returns every product
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.get(ctx, "/api/v1/products", "/api/v1/products", &out)
	return out, err
}

// ListSessions returns every production session
func (c *Client) ListSessions(ctx context.Context) ([]models.ProductionSession, error) {
	var out []models.ProductionSession
	err := c.get(ctx, "/api/v1/sessions", "/api/v1/sessions", &out)
	return out, err
}

// GetSession returns one production session with its orders
func (c *Client) GetSession(ctx context.Context, id int64) (*models.ProductionSession, error) {
	var out models.ProductionSession
	path := "/api/v1/sessions/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, "/api/v1/sessions/{id}", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTeamProductivity returns every team productivity rate
func (c *Client) ListTeamProductivity(ctx context.Context) ([]models.TeamProductivity, error) {
	var out []models.TeamProductivity
	err := c.get(ctx, "/api/v1/team-productivity", "/api/v1/team-productivity", &out)
	return out, err
}

// ListOptimizationRuns returns every optimization run
func (c *Client) ListOptimizationRuns(ctx context.Context) ([]models.OptimizationRun, error) {
	var out []models.OptimizationRun
	err := c.get(ctx, "/api/v1/optimization", "/api/v1/optimization", &out)
	return out, err
}

// RunsForSession returns the optimization runs computed for one production
// session
func (c *Client) RunsForSession(ctx context.Context, sessionID int64) ([]models.OptimizationRun, error) {
	all, err := c.ListOptimizationRuns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.OptimizationRun, 0, len(all))
	for _, r := range all {
		if r.ProductionSession != nil && r.ProductionSession.ID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListOptimizationResults returns every optimization result of every run
func (c *Client) ListOptimizationResults(ctx context.Context) ([]models.OptimizationResult, error) {
	var out []models.OptimizationResult
	err := c.get(ctx, "/api/v1/optimization/result", "/api/v1/optimization/result", &out)
	return out, err
}

// ResultsForSession returns the optimization results that belong to one
// production session. The planning API has no session filter, so the
// scoping happens here.
func (c *Client) ResultsForSession(ctx context.Context, sessionID int64) ([]models.OptimizationResult, error) {
	all, err := c.ListOptimizationResults(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.OptimizationResult, 0, len(all))
	for _, r := range all {
		if r.ProductionSession != nil && r.ProductionSession.ID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Optimize starts an optimization of the run with the absence counts of the
// request and returns the computed results.
func (c *Client) Optimize(ctx context.Context, req models.OptimizeRequest) ([]models.OptimizationResult, error) {
	body := make(map[string]int, len(req.AbsenceCountByTeam))
	for teamID, count := range req.AbsenceCountByTeam {
		body[strconv.FormatInt(teamID, 10)] = count
	}

	// optimize has its own bound instead of the read timeout
	ctx, cancel := withDefaultTimeout(ctx, optimizeTimeout)
	defer cancel()

	var out []models.OptimizationResult
	path := "/api/v1/optimization/optimize/" + strconv.FormatInt(req.OptimizationRunID, 10)
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/optimization/optimize/{id}", path, body, &out)
	return out, err
}

// optimizeTimeout bounds an optimize call when the caller set no deadline
const optimizeTimeout = 5 * time.Minute

func withDefaultTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
