package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// HTTPClient is a thin wrapper over net/http bound to one server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
	}
}

func (c *HTTPClient) Tasks() *Resource[models.Task] {
	return &Resource[models.Task]{c: c, path: "/task"}
}

func (c *HTTPClient) Services() *Resource[models.Service] {
	return &Resource[models.Service]{c: c, path: "/service"}
}

type registerRequest struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account. ErrConflict means the username is taken.
func (c *HTTPClient) Register(ctx context.Context, id uint64, username string, password []byte) error {
	_, err := c.do(ctx, http.MethodPost, "/register", registerRequest{ID: id, Username: username, Password: string(password)}, nil)
	return err
}

// Login checks credentials. ErrUnauthorized means the user is unknown,
// ErrInvalidCredentials that the password is wrong.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) error {
	_, err := c.do(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: string(password)}, nil)
	if errors.Is(err, ErrBadRequest) {
		return ErrInvalidCredentials
	}
	return err
}

// Health is the server's health report.
type Health struct {
	Status  string `json:"status"`
	Records struct {
		Tasks    int `json:"tasks"`
		Services int `json:"services"`
		Users    int `json:"users"`
	} `json:"records"`
}

func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var h Health
	if _, err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// do sends in as JSON (when non-nil), decodes a 200 response into out (when
// non-nil) and maps any other status to a sentinel error.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, statusError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func statusError(code int, msg string) error {
	var base error
	switch code {
	case http.StatusBadRequest:
		base = ErrBadRequest
	case http.StatusUnauthorized:
		base = ErrUnauthorized
	case http.StatusNotFound:
		base = ErrNotFound
	case http.StatusConflict:
		base = ErrConflict
	case http.StatusServiceUnavailable:
		base = ErrUnavailable
	default:
		base = ErrServer
	}
	if msg == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, msg)
}
