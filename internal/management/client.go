package management

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/shisui/config"
	"github.com/haguru/shisui/internal/interfaces"
	"github.com/haguru/shisui/internal/models"
	"github.com/haguru/shisui/pkg/helper"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Client talks to the identity platform's management API. All state is
// scoped to a single run; there is no global configuration.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	Logger  interfaces.Logger
	Metrics interfaces.Metrics
}

// NewClient builds a management API client from tenant configuration.
// Outbound requests go through an otel-instrumented transport and a
// client-side rate limiter, since management APIs are rate limited.
func NewClient(cfg *config.TenantConfig, logger interfaces.Logger, metrics interfaces.Metrics) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}

	return &Client{
		baseURL: baseURL(cfg.Domain),
		token:   cfg.Token,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		Logger:  logger,
		Metrics: metrics,
	}
}

// baseURL normalizes a tenant domain into a URL. A bare domain gets the
// https scheme; an explicit scheme is kept (used by tests).
func baseURL(domain string) string {
	if strings.Contains(domain, "://") {
		return strings.TrimSuffix(domain, "/")
	}
	return "https://" + domain
}

// ResolveConnection looks up the id of the connection with the given
// name. The listing is filtered server-side by the fixed strategy tag
// and client-side by exact name match; the first match wins.
func (c *Client) ResolveConnection(ctx context.Context, name string) (string, error) {
	funcName := helper.GetFuncName()
	if name == "" {
		return "", fmt.Errorf("%s", ErrEmptyConnectionName)
	}

	endpoint := c.baseURL + ConnectionsPath + "?strategy=" + url.QueryEscape(ConnectionStrategy)
	body, err := c.get(ctx, "resolve_connection", endpoint)
	if err != nil {
		return "", err
	}

	var connections []models.Connection
	if err := json.Unmarshal(body, &connections); err != nil {
		return "", fmt.Errorf("%s: %w", ErrFailedToDecodeBody, err)
	}

	for _, conn := range connections {
		if conn.Name == name {
			c.Logger.Info("Connection resolved", "func", funcName, "connection", name, "id", conn.ID)
			return conn.ID, nil
		}
	}

	c.Logger.Error("Connection not found", "func", funcName, "connection", name, "listed", len(connections))
	return "", fmt.Errorf("%q: %w", name, ErrConnectionNotFound)
}

// SubmitImport submits the serialized batch as a bulk import job against
// the given connection. The payload is streamed from memory; no temp
// file is involved. Success is an explicit 200 or 202 with a job id.
func (c *Client) SubmitImport(ctx context.Context, importPayload []byte, connectionID string, opts models.SubmitOptions) (*models.ImportJob, error) {
	funcName := helper.GetFuncName()
	if connectionID == "" {
		return nil, fmt.Errorf("%s", ErrEmptyConnectionTarget)
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = DefaultPayloadFileName
	}

	form := &bytes.Buffer{}
	writer := multipart.NewWriter(form)

	part, err := writer.CreateFormFile(UsersField, fileName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToBuildPayload, err)
	}
	if _, err := part.Write(importPayload); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToBuildPayload, err)
	}
	if err := writer.WriteField(ConnectionIDField, connectionID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToBuildPayload, err)
	}
	// Completion emails are never wanted for synthetic accounts.
	if err := writer.WriteField(SendCompletionEmailField, "false"); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToBuildPayload, err)
	}
	if opts.ExternalID != "" {
		if err := writer.WriteField(ExternalIDField, opts.ExternalID); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFailedToBuildPayload, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToBuildPayload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ImportsPath, form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToBuildRequest, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var startTime time.Time
	if c.Metrics != nil {
		startTime = time.Now()
	}

	body, statusCode, err := c.do(req, "submit_import")
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK && statusCode != http.StatusAccepted {
		c.Logger.Error(ErrSubmitRejected, "func", funcName, "status", statusCode, "body", string(body))
		return nil, &TransportError{Op: "submit_import", StatusCode: statusCode, Body: string(body)}
	}

	job := &models.ImportJob{}
	if err := json.Unmarshal(body, job); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToDecodeBody, err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("%s", ErrJobMissingID)
	}

	if c.Metrics != nil {
		c.Metrics.ObserveHistogram(SubmitDurationSeconds, time.Since(startTime).Seconds())
	}

	c.Logger.Info("Import job submitted", "func", funcName, "job", job.ID, "connection", connectionID, "status", job.Status)
	return job, nil
}

// GetJob fetches the current state of an import job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*models.ImportJob, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%s", ErrEmptyJobID)
	}

	body, err := c.get(ctx, "get_job", c.baseURL+JobsPath+url.PathEscape(jobID))
	if err != nil {
		return nil, err
	}

	job := &models.ImportJob{}
	if err := json.Unmarshal(body, job); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToDecodeBody, err)
	}

	return job, nil
}

// AwaitJob polls jobID until its status is no longer pending. The first
// non-pending response returns immediately; otherwise polls are spaced
// by interval and bounded by maxWait and by ctx. A non-200 status during
// polling aborts at once with a TransportError.
func (c *Client) AwaitJob(ctx context.Context, jobID string, interval, maxWait time.Duration) (*models.ImportJob, error) {
	funcName := helper.GetFuncName()
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	ctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	for attempt := 1; ; attempt++ {
		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}

		if c.Metrics != nil {
			c.Metrics.IncCounter(PollAttemptsTotal)
		}

		// The terminal state names are the remote service's business; all
		// the client relies on is "not pending".
		if !job.Pending() {
			c.Logger.Info("Import job reached terminal state", "func", funcName, "job", jobID, "status", job.Status, "polls", attempt)
			return job, nil
		}

		c.Logger.Debug("Import job still pending", "func", funcName, "job", jobID, "attempt", attempt)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s for job %s: %w", ErrPollTimedOut, jobID, ctx.Err())
		case <-time.After(interval):
		}
	}
}

// get issues an authenticated GET and returns the body of a 200
// response. Any other status becomes a TransportError.
func (c *Client) get(ctx context.Context, op, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToBuildRequest, err)
	}

	body, statusCode, err := c.do(req, op)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, &TransportError{Op: op, StatusCode: statusCode, Body: string(body)}
	}

	return body, nil
}

// do applies auth and rate limiting, executes the request and reads the
// body. Status handling is left to the caller.
func (c *Client) do(req *http.Request, op string) ([]byte, int, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrRateLimiterWait, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		if c.Metrics != nil {
			c.Metrics.IncCounterVec(APIRequestsTotal, op, OutcomeError)
		}
		return nil, 0, fmt.Errorf("%s %s: %w", ErrRequestFailed, op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrFailedToDecodeBody, err)
	}

	if c.Metrics != nil {
		outcome := OutcomeSuccess
		if resp.StatusCode >= http.StatusBadRequest {
			outcome = OutcomeError
		}
		c.Metrics.IncCounterVec(APIRequestsTotal, op, outcome)
	}

	return body, resp.StatusCode, nil
}
