// Package api provides the JSON REST client for the analysis backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the backend. The session cookie lives in the jar for the
// lifetime of the process.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError reports a non-2xx response, carrying the server message when
// the body held one.
type StatusError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request %s failed with status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request %s failed with status %d", e.Path, e.StatusCode)
}

// AuthStatus is the /api/check-auth response.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email"`
}

// Message is the envelope used by login, signup, and logout.
type Message struct {
	Message string `json:"message"`
}

// UploadResponse is the /api/upload response.
type UploadResponse struct {
	Success    bool     `json:"success"`
	Prediction string   `json:"prediction"`
	Confidence *float64 `json:"confidence"`
	Message    string   `json:"message"`
}

// ImageList is the /api/my-images response.
type ImageList struct {
	Images []ImageEntry `json:"images"`
}

// ImageEntry is one row of the server-side scan history.
type ImageEntry struct {
	ImageURL   string `json:"image_url"`
	Prediction string `json:"prediction"`
	CreatedAt  string `json:"created_at"`
}

// CheckAuth queries the current session. Any failure reads as signed-out.
func (c *Client) CheckAuth(ctx context.Context) AuthStatus {
	var out AuthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/check-auth", nil, &out); err != nil {
		return AuthStatus{}
	}
	return out
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (Message, error) {
	body := map[string]string{"email": email, "password": password}
	var out Message
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", body, &out); err != nil {
		return Message{}, err
	}
	return out, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, password string) (Message, error) {
	body := map[string]string{"email": email, "password": password}
	var out Message
	if err := c.doJSON(ctx, http.MethodPost, "/api/signup", body, &out); err != nil {
		return Message{}, err
	}
	return out, nil
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) (Message, error) {
	var out Message
	if err := c.doJSON(ctx, http.MethodPost, "/api/logout", nil, &out); err != nil {
		return Message{}, err
	}
	return out, nil
}

// Upload submits one image for classification as a single multipart field.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return UploadResponse{}, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadResponse{}, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("upload request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var out UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return UploadResponse{}, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return out, nil
}

// MyImages fetches the user's scan history.
func (c *Client) MyImages(ctx context.Context) (ImageList, error) {
	var out ImageList
	if err := c.doJSON(ctx, http.MethodGet, "/api/my-images", nil, &out); err != nil {
		return ImageList{}, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request %s: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg Message
		if derr := json.NewDecoder(resp.Body).Decode(&msg); derr != nil {
			msg.Message = ""
		}
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response %s: %w", path, err)
	}
	return nil
}
