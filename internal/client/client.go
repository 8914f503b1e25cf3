// Package client is the HTTP client the terminal front-end uses to talk to
// the StudyHub API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

const apiPrefix = "/api/v1"

// ErrUnauthorized is returned when the API rejects the access token.
var ErrUnauthorized = errors.New("client unauthorized")

// Config configures the API client.
type Config struct {
	BaseURL string        `env:"STUDYHUB_API_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"STUDYHUB_API_TIMEOUT" envDefault:"15s"`
	// PageSize is the number of items requested per list call.
	PageSize int `env:"STUDYHUB_PAGE_SIZE" envDefault:"100"`
}

// APIError is an error envelope returned by the API.
type APIError struct {
	Status  int
	Code    string
	Message string
	// Fields holds per-field messages of a rejected form.
	Fields map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap lets callers test for ErrUnauthorized.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client calls the StudyHub API.
type Client struct {
	http     *resty.Client
	pageSize int

	mu    sync.RWMutex
	token string
}

// New creates a client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")+apiPrefix).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: cli, pageSize: cfg.PageSize}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *dto.ErrorDetail `json:"error"`
}

type page[T any] struct {
	Items      []T                `json:"items"`
	Pagination dto.PaginationInfo `json:"pagination"`
}

// SignIn opens a session and keeps its token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*dto.SessionResponse, error) {
	var out dto.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/sign-in", dto.SignInRequest{Email: email, Password: password}, nil, &out); err != nil {
		return nil, err
	}
	c.keepSession(&out)
	return &out, nil
}

// SignUp registers an account and keeps the new session's token.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*dto.SessionResponse, error) {
	var out dto.SessionResponse
	req := dto.SignUpRequest{Email: email, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/auth/sign-up", req, nil, &out); err != nil {
		return nil, err
	}
	c.keepSession(&out)
	return &out, nil
}

// SignOut revokes the session and forgets its token.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/sign-out", nil, nil, nil)
	c.SetToken("")
	return err
}

// Session reports the current session and whether the profile is loaded.
func (c *Client) Session(ctx context.Context) (*dto.SessionResponse, error) {
	var out dto.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/me/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notifications returns the queue, newest first.
func (c *Client) Notifications(ctx context.Context) ([]notification.Notification, error) {
	return List[notification.Notification](ctx, c, "/notifications", "")
}

// Toast returns the newest notification while it is still shown, or nil.
func (c *Client) Toast(ctx context.Context) (*notification.Notification, error) {
	var out dto.ToastResponse
	if err := c.do(ctx, http.MethodGet, "/notifications/toast", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Toast, nil
}

// Delete removes the resource at path/id. Deleting a missing id succeeds with
// Removed set to false.
func (c *Client) Delete(ctx context.Context, path, id string) (dto.DeleteResponse, error) {
	var out dto.DeleteResponse
	err := c.do(ctx, http.MethodDelete, strings.TrimRight(path, "/")+"/"+id, nil, nil, &out)
	return out, err
}

// List fetches the first page of a list endpoint, optionally filtered by a
// free-text search.
func List[T any](ctx context.Context, c *Client, path, search string) ([]T, error) {
	query := map[string]string{"size": strconv.Itoa(c.pageSize)}
	if search = strings.TrimSpace(search); search != "" {
		query["q"] = search
	}

	var out page[T]
	if err := c.do(ctx, http.MethodGet, path, nil, query, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) keepSession(resp *dto.SessionResponse) {
	if resp.Session != nil {
		c.SetToken(resp.Session.AccessToken)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, query map[string]string, result interface{}) error {
	req := c.http.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var env envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil && !resp.IsError() {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if resp.IsError() {
		return apiError(resp.StatusCode(), env.Error)
	}
	if result == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

func apiError(status int, detail *dto.ErrorDetail) *APIError {
	out := &APIError{Status: status, Message: http.StatusText(status)}
	if detail == nil {
		return out
	}
	out.Code = string(detail.Code)
	out.Message = detail.Message

	// Auth form and validation failures carry per-field messages in details.fields.
	if details, ok := detail.Details.(map[string]interface{}); ok {
		if fields, ok := details["fields"].(map[string]interface{}); ok {
			out.Fields = make(map[string]string, len(fields))
			for field, msg := range fields {
				out.Fields[field] = fmt.Sprint(msg)
			}
		}
	}
	return out
}
