// Package apiclient provides a typed HTTP client for the marketplace API.
// A client with no base URL configured answers every call locally with a
// "not configured" response instead of touching the network, so callers can
// always branch on the envelope rather than on transport errors.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/celebration"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
)

// ErrNotConfigured is the error string returned when no base URL is set.
const ErrNotConfigured = "API base URL not configured"

// Response is the envelope every endpoint returns.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Client calls the marketplace REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config configures the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a client. An empty BaseURL is allowed and produces a client
// whose calls all return the not-configured response.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client has a base URL to call.
func (c *Client) Configured() bool { return c.baseURL != "" }

func notConfigured[T any]() Response[T] {
	return Response[T]{Success: false, Error: ErrNotConfigured}
}

func do[T any](ctx context.Context, c *Client, method, path string, body interface{}) (Response[T], error) {
	var out Response[T]
	if !c.Configured() {
		return notConfigured[T](), nil
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return out, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return out, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return out, fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// Apps fetches the approved app listings.
func (c *Client) Apps(ctx context.Context) (Response[[]listing.App], error) {
	return do[[]listing.App](ctx, c, http.MethodGet, "/apps", nil)
}

// App fetches one app by id.
func (c *Client) App(ctx context.Context, id string) (Response[listing.App], error) {
	return do[listing.App](ctx, c, http.MethodGet, "/apps/"+id, nil)
}

// SubmitApp submits an app listing request for review.
func (c *Client) SubmitApp(ctx context.Context, form submission.AppFormData) (Response[map[string]string], error) {
	payload := map[string]interface{}{"data": form}
	return do[map[string]string](ctx, c, http.MethodPost, "/apps", payload)
}

// SubmitDeal submits a deal listing request for review.
func (c *Client) SubmitDeal(ctx context.Context, form submission.DealFormData) (Response[map[string]string], error) {
	payload := map[string]interface{}{"data": form}
	return do[map[string]string](ctx, c, http.MethodPost, "/deals", payload)
}

// Deals fetches the approved deal listings.
func (c *Client) Deals(ctx context.Context) (Response[[]listing.Deal], error) {
	return do[[]listing.Deal](ctx, c, http.MethodGet, "/deals", nil)
}

// Deal fetches one deal by id.
func (c *Client) Deal(ctx context.Context, id string) (Response[listing.Deal], error) {
	return do[listing.Deal](ctx, c, http.MethodGet, "/deals/"+id, nil)
}

// ClaimDeal claims a deal for a user.
func (c *Client) ClaimDeal(ctx context.Context, dealID, userID, email string) (Response[json.RawMessage], error) {
	payload := map[string]string{"userId": userID, "email": email}
	return do[json.RawMessage](ctx, c, http.MethodPost, "/deals/"+dealID+"/claim", payload)
}

// Submissions fetches the full submission queue.
func (c *Client) Submissions(ctx context.Context) (Response[[]submission.Submission], error) {
	return do[[]submission.Submission](ctx, c, http.MethodGet, "/submissions", nil)
}

// ApproveSubmission approves a submission by id.
func (c *Client) ApproveSubmission(ctx context.Context, id string) (Response[submission.Submission], error) {
	return do[submission.Submission](ctx, c, http.MethodPost, "/submissions/"+id+"/approve", nil)
}

// RejectSubmission rejects a submission with optional reviewer notes.
func (c *Client) RejectSubmission(ctx context.Context, id, notes string) (Response[submission.Submission], error) {
	payload := map[string]string{"notes": notes}
	return do[submission.Submission](ctx, c, http.MethodPost, "/submissions/"+id+"/reject", payload)
}

// RequestRevision sends a submission back to its author for changes.
func (c *Client) RequestRevision(ctx context.Context, id, notes string) (Response[submission.Submission], error) {
	payload := map[string]string{"notes": notes}
	return do[submission.Submission](ctx, c, http.MethodPost, "/submissions/"+id+"/request-revision", payload)
}

// NextCelebration fetches the next pending celebration, if any.
func (c *Client) NextCelebration(ctx context.Context) (Response[*celebration.Event], error) {
	return do[*celebration.Event](ctx, c, http.MethodGet, "/celebrations/next", nil)
}

// DismissCelebration marks a celebration as shown.
func (c *Client) DismissCelebration(ctx context.Context, ev celebration.Event) (Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodPost, "/celebrations/dismiss", ev)
}
