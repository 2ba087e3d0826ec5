// Package client implements the API client and the session/feed state
// stores used by the terminal frontend. The stores mirror the server state
// through plain request-then-replace calls; there are no optimistic updates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/periferia/periferia-social/internal/model"
)

// ErrUnauthorized marks 401 responses so the session store can invalidate
// a stale token.
var ErrUnauthorized = errors.New("unauthorized")

// genericErrorMessage is the fallback when the server response carries no
// usable message.
const genericErrorMessage = "Ocurrió un error inesperado"

// APIError is a non-2xx response with its best-effort extracted message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client is an HTTP client for the social API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// ClearToken removes the bearer token.
func (c *Client) ClearToken() { c.token = "" }

// Login exchanges credentials for a token and user profile.
func (c *Client) Login(ctx context.Context, identifier, password string) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		model.LoginRequest{Identifier: identifier, Password: password}, &resp)
	return resp, err
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (model.UserResponse, error) {
	var resp model.UserResponse
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &resp)
	return resp, err
}

// Feed fetches all feed entries, newest first.
func (c *Client) Feed(ctx context.Context) ([]model.PostResponse, error) {
	var resp []model.PostResponse
	err := c.do(ctx, http.MethodGet, "/api/posts", nil, &resp)
	return resp, err
}

// CreatePost publishes a new post and returns its feed entry.
func (c *Client) CreatePost(ctx context.Context, message string) (model.PostResponse, error) {
	var resp model.PostResponse
	err := c.do(ctx, http.MethodPost, "/api/posts",
		model.CreatePostRequest{Message: message}, &resp)
	return resp, err
}

// LikePost likes a post and returns its refreshed feed entry.
func (c *Client) LikePost(ctx context.Context, postID string) (model.PostResponse, error) {
	var resp model.PostResponse
	err := c.do(ctx, http.MethodPost, "/api/posts/"+postID+"/like", nil, &resp)
	return resp, err
}

// UnlikePost removes a like and returns the refreshed feed entry.
func (c *Client) UnlikePost(ctx context.Context, postID string) (model.PostResponse, error) {
	var resp model.PostResponse
	err := c.do(ctx, http.MethodPost, "/api/posts/"+postID+"/unlike", nil, &resp)
	return resp, err
}

type apiEnvelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := genericErrorMessage
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return decodeErr
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// errorMessage extracts a user-facing message from an error, falling back
// to the given default for anything without one.
func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
