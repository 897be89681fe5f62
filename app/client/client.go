// Package client is the data gateway the web UI uses to reach the Content
// API. Every non-success response becomes an *OperationError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lumina/app/assistant"
	"lumina/app/models"
)

// Operation names carried by OperationError.
const (
	OpFetchPosts    = "fetch posts"
	OpFetchPost     = "fetch post"
	OpCreatePost    = "create post"
	OpUpdatePost    = "update post"
	OpDeletePost    = "delete post"
	OpAddComment    = "add comment"
	OpGenerateDraft = "generate draft"
)

// OperationError reports a failed gateway call. Status is zero when the
// request never produced a response.
type OperationError struct {
	Op      string
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s: %d %s", e.Op, e.Status, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the server answered 404.
func (e *OperationError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is an OperationError for a 404.
func IsNotFound(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr) && opErr.NotFound()
}

// FieldErrors returns the per-field validation messages carried by err, if any.
func FieldErrors(err error) map[string]string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Fields
	}
	return nil
}

// Client calls the Content API rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient gets a
// default with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// ListPosts fetches every post, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.do(ctx, OpFetchPosts, http.MethodGet, "/api/posts", nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, OpFetchPost, http.MethodGet, postPath(id), nil, http.StatusOK, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post from the six required fields.
func (c *Client) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, OpCreatePost, http.MethodPost, "/api/posts", in, http.StatusCreated, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost sends a partial update.
func (c *Client) UpdatePost(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, OpUpdatePost, http.MethodPut, postPath(id), patch, http.StatusOK, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post and its comments.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, OpDeletePost, http.MethodDelete, postPath(id), nil, http.StatusNoContent, nil)
}

// AddComment appends a comment and returns it as stored by the server.
func (c *Client) AddComment(ctx context.Context, postID string, in models.CommentInput) (*models.Comment, error) {
	var comment models.Comment
	if err := c.do(ctx, OpAddComment, http.MethodPost, postPath(postID)+"/comments", in, http.StatusCreated, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GenerateDraft asks the server's draft assistant for a draft.
func (c *Client) GenerateDraft(ctx context.Context, in models.DraftInput) (assistant.Draft, error) {
	var draft assistant.Draft
	if err := c.do(ctx, OpGenerateDraft, http.MethodPost, "/api/drafts", in, http.StatusOK, &draft); err != nil {
		return assistant.Draft{}, err
	}
	return draft, nil
}

func postPath(id string) string {
	return "/api/posts/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &OperationError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &OperationError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &OperationError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeFailure(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &OperationError{Op: op, Status: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

// decodeFailure builds an OperationError from a {message, errors} payload,
// falling back to the status text when the body is not JSON.
func decodeFailure(op string, resp *http.Response) error {
	opErr := &OperationError{Op: op, Status: resp.StatusCode}
	var payload struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		opErr.Message = payload.Message
		opErr.Fields = payload.Errors
	} else {
		opErr.Message = http.StatusText(resp.StatusCode)
	}
	return opErr
}
