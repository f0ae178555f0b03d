package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/openticket/openticket/internal/client/models"
	"github.com/openticket/openticket/internal/common"
	"github.com/openticket/openticket/internal/logging"
)

// HTTPClient talks to the Openticket REST API. The session token set with
// SetSessionToken is attached to every request.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL (e.g. "http://127.0.0.1:8080/api").
// A zero timeout disables the per-request deadline.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) SetSessionToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) Status(ctx context.Context) (models.Status, error) {
	return call[models.Status](ctx, c, http.MethodGet, "/status", nil)
}

func (c *HTTPClient) Setup(ctx context.Context, req models.SetupRequest) (models.Setup, error) {
	return call[models.Setup](ctx, c, http.MethodPost, "/setup", req)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.Login, error) {
	return call[models.Login](ctx, c, http.MethodPost, "/login", req)
}

func (c *HTTPClient) Tickets(ctx context.Context, query url.Values) ([]models.Ticket, error) {
	path := "/tickets"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return call[[]models.Ticket](ctx, c, http.MethodGet, path, nil)
}

func (c *HTTPClient) Ticket(ctx context.Context, id int32) (models.Ticket, error) {
	return call[models.Ticket](ctx, c, http.MethodGet, ticketPath(id), nil)
}

func (c *HTTPClient) CreateTicket(ctx context.Context, req models.CreateTicketRequest) (models.Ticket, error) {
	return call[models.Ticket](ctx, c, http.MethodPost, "/tickets", req)
}

func (c *HTTPClient) PatchTicket(ctx context.Context, id int32, req models.PatchTicketRequest) (models.Ticket, error) {
	return call[models.Ticket](ctx, c, http.MethodPatch, ticketPath(id), req)
}

func (c *HTTPClient) DeleteTicket(ctx context.Context, id int32) error {
	return c.do(ctx, http.MethodDelete, ticketPath(id), nil, nil)
}

func (c *HTTPClient) Comments(ctx context.Context, ticketID int32) ([]models.Comment, error) {
	return call[[]models.Comment](ctx, c, http.MethodGet, ticketPath(ticketID)+"/comments", nil)
}

func (c *HTTPClient) CreateComment(ctx context.Context, ticketID int32, req models.CreateCommentRequest) (models.Comment, error) {
	return call[models.Comment](ctx, c, http.MethodPost, ticketPath(ticketID)+"/comments", req)
}

func (c *HTTPClient) PatchComment(ctx context.Context, ticketID, commentID int32, req models.PatchCommentRequest) (models.Comment, error) {
	return call[models.Comment](ctx, c, http.MethodPatch, commentPath(ticketID, commentID), req)
}

func (c *HTTPClient) DeleteComment(ctx context.Context, ticketID, commentID int32) error {
	return c.do(ctx, http.MethodDelete, commentPath(ticketID, commentID), nil, nil)
}

func (c *HTTPClient) Labels(ctx context.Context, name string) ([]models.Label, error) {
	path := "/labels"
	if name != "" {
		path += "?" + url.Values{"name": {name}}.Encode()
	}
	return call[[]models.Label](ctx, c, http.MethodGet, path, nil)
}

func (c *HTTPClient) CreateLabel(ctx context.Context, req models.CreateLabelRequest) (models.Label, error) {
	return call[models.Label](ctx, c, http.MethodPost, "/labels", req)
}

func (c *HTTPClient) CreateAssignment(ctx context.Context, ticketID int32, req models.CreateAssignmentRequest) (models.Assignment, error) {
	return call[models.Assignment](ctx, c, http.MethodPost, ticketPath(ticketID)+"/assignments", req)
}

func (c *HTTPClient) DeleteAssignment(ctx context.Context, ticketID, assignmentID int32) error {
	path := ticketPath(ticketID) + "/assignments/" + strconv.FormatInt(int64(assignmentID), 10)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func ticketPath(id int32) string {
	return "/tickets/" + strconv.FormatInt(int64(id), 10)
}

func commentPath(ticketID, commentID int32) string {
	return ticketPath(ticketID) + "/comments/" + strconv.FormatInt(int64(commentID), 10)
}

// call performs a request and unwraps the data field of the envelope.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any) (T, error) {
	var res models.Response[T]
	if err := c.do(ctx, method, path, body, &res); err != nil {
		var zero T
		return zero, err
	}
	return res.Data, nil
}

// do sends body as JSON and decodes a 2xx answer into out (if non-nil).
// Transport failures map to ErrUnavailable, non-2xx answers to *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.SessionToken(); token != "" {
		req.Header.Set(common.SessionTokenHeaderName, token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope models.Response[json.RawMessage]
		if len(raw) > 0 && json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = envelope.Message
			apiErr.Fields = envelope.Errors
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
