// Package client talks to the registration backend: a JSON resource
// collection at /users supporting list, create, update-by-id and
// delete-by-id.
//
// The client never retries. A zero timeout (the default) waits for the
// backend indefinitely; callers bound individual calls with their context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/response"
)

// UsersPath is the collection every request is made against.
const UsersPath = "/users"

// RequestIDHeader carries a per-request id the backend can log.
const RequestIDHeader = "X-Request-ID"

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string // from the backend's error envelope, if it sent one
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, msg)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the backend rooted at baseURL
// (e.g. "http://localhost:5000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListStudents fetches the whole collection in the order the backend
// returns it.
func (c *Client) ListStudents(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, http.MethodGet, UsersPath, nil, &students); err != nil {
		return nil, fmt.Errorf("client.ListStudents: %w", err)
	}
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

// CreateStudent posts s without an identifier and returns the backend's
// echo, which carries the assigned ID.
func (c *Client) CreateStudent(ctx context.Context, s types.Student) (types.Student, error) {
	s.ID = ""
	created := s
	if err := c.do(ctx, http.MethodPost, UsersPath, s, &created); err != nil {
		return types.Student{}, fmt.Errorf("client.CreateStudent: %w", err)
	}
	return created, nil
}

// UpdateStudent replaces the record with the given id by s. The body is
// the full record, id included.
func (c *Client) UpdateStudent(ctx context.Context, id types.ID, s types.Student) (types.Student, error) {
	if id == "" {
		return types.Student{}, errors.New("client.UpdateStudent: empty id")
	}
	s.ID = id
	updated := s
	if err := c.do(ctx, http.MethodPut, itemPath(id), s, &updated); err != nil {
		return types.Student{}, fmt.Errorf("client.UpdateStudent: %w", err)
	}
	return updated, nil
}

// DeleteStudent removes the record with the given id.
func (c *Client) DeleteStudent(ctx context.Context, id types.ID) error {
	if id == "" {
		return errors.New("client.DeleteStudent: empty id")
	}
	if err := c.do(ctx, http.MethodDelete, itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteStudent: %w", err)
	}
	return nil
}

func itemPath(id types.ID) string {
	return UsersPath + "/" + url.PathEscape(string(id))
}

// do sends one request. in, when non-nil, is encoded as the JSON body;
// out, when non-nil, receives the decoded response body. An empty 2xx
// body leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	c.log.Debug("backend request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", reqID),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Code:    resp.StatusCode,
			Message: envelopeMessage(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// envelopeMessage extracts the error text from a response.Response body,
// falling back to the raw body for backends that answer in plain text.
func envelopeMessage(raw []byte) string {
	var env response.Response
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		return env.Error
	}
	return strings.TrimSpace(string(raw))
}
