// Package client is a typed Go client for the console's presence endpoints.
// It owns the session explicitly: an expired session is dropped before any
// request goes out and a 401 answer invalidates it.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// ErrNoSession is returned when an authenticated call has no valid session.
var ErrNoSession = errors.New("client: no valid session")

// User is the account returned on login.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Session is the caller's credentials and their expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Valid reports whether the session can still authenticate at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

// LogEntry is one presence session as served by the API.
type LogEntry struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	EmployeeName string     `json:"employeeName"`
	Location     string     `json:"location"`
	CheckIn      time.Time  `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	Status       string     `json:"status"`
}

// Active reports whether the session is still open.
func (l *LogEntry) Active() bool {
	return l != nil && l.Status == "Active"
}

// Elapsed is now-CheckIn while open and CheckOut-CheckIn once closed.
func (l *LogEntry) Elapsed(now time.Time) time.Duration {
	if l == nil {
		return 0
	}
	end := now
	if l.CheckOut != nil {
		end = *l.CheckOut
	}
	if end.Before(l.CheckIn) {
		return 0
	}
	return end.Sub(l.CheckIn)
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client talks to the console API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time

	mu      sync.RWMutex
	session *Session
}

// New creates a client for the API rooted at baseURL (for example
// "http://localhost:3001/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session, or nil.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// SetSession installs a previously obtained session.
func (c *Client) SetSession(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == nil {
		c.session = nil
		return
	}
	cp := *s
	c.session = &cp
}

// Logout drops the session.
func (c *Client) Logout() {
	c.SetSession(nil)
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &session, false); err != nil {
		return nil, err
	}
	c.SetSession(&session)
	return c.Session(), nil
}

// CheckIn opens a presence session at location.
func (c *Client) CheckIn(ctx context.Context, location string) (*LogEntry, error) {
	var entry LogEntry
	body := map[string]string{"location": location}
	if err := c.do(ctx, http.MethodPost, "/tracking/checkin", body, &entry, true); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CheckOut closes the caller's open session.
func (c *Client) CheckOut(ctx context.Context) (*LogEntry, error) {
	var entry LogEntry
	if err := c.do(ctx, http.MethodPost, "/tracking/checkout", nil, &entry, true); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Logs lists presence sessions, newest check-in first. An empty status
// returns every log.
func (c *Client) Logs(ctx context.Context, status string) ([]LogEntry, error) {
	path := "/tracking"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var entries []LogEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries, true); err != nil {
		return nil, err
	}
	return entries, nil
}

// Current returns the caller's open session, or nil when there is none.
func (c *Client) Current(ctx context.Context) (*LogEntry, error) {
	var out struct {
		Log LogEntry `json:"log"`
	}
	err := c.do(ctx, http.MethodGet, "/tracking/current", nil, &out, true)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out.Log, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var token string
	if authed {
		c.mu.Lock()
		if !c.session.Valid(c.now()) {
			c.session = nil
			c.mu.Unlock()
			return ErrNoSession
		}
		token = c.session.Token
		c.mu.Unlock()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("console %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		if resp.StatusCode == http.StatusUnauthorized && authed {
			c.invalidate(token)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// invalidate drops the session only if it still holds the rejected token.
func (c *Client) invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil && c.session.Token == token {
		c.session = nil
	}
}
