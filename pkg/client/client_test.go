package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginStoresSessionAndAuthenticatesRequests(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, map[string]any{
				"token":     "tok-1",
				"expiresAt": expires,
				"user":      map[string]string{"id": "u1", "name": "Alice", "role": "Employee", "email": "a@x.io"},
			})
		case "/api/tracking/checkin":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("Authorization = %q", got)
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			writeJSON(w, http.StatusCreated, map[string]any{
				"id": "l1", "userId": "u1", "employeeName": "Alice", "location": body["location"],
				"checkIn": time.Now().UTC(), "checkOut": nil, "status": "Active",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	session, err := c.Login(context.Background(), "a@x.io", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token != "tok-1" || session.User.Name != "Alice" || !session.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected session %+v", session)
	}

	entry, err := c.CheckIn(context.Background(), "Main Office")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if entry.Location != "Main Office" || !entry.Active() || entry.CheckOut != nil {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestExpiredSessionIsClearedBeforeRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusOK, []LogEntry{})
	}))
	defer srv.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := New(srv.URL, WithClock(func() time.Time { return now }))
	c.SetSession(&Session{Token: "old", ExpiresAt: now.Add(-time.Second)})

	if _, err := c.Logs(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no request, got %d", calls)
	}
	if c.Session() != nil {
		t.Fatal("expected session to be cleared")
	}
}

func TestUnauthorizedResponseInvalidatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token.", "code": "UNAUTHORIZED"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(&Session{Token: "revoked", ExpiresAt: time.Now().Add(time.Hour)})

	_, err := c.CheckOut(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid token." || apiErr.Code != "UNAUTHORIZED" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if c.Session() != nil {
		t.Fatal("expected session to be invalidated")
	}
}

func TestCheckOutWithoutSessionReportsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No active session.", "code": "NOT_FOUND"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(&Session{Token: "t", ExpiresAt: time.Now().Add(time.Hour)})

	_, err := c.CheckOut(context.Background())
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404, got %v", err)
	}
	if c.Session() == nil {
		t.Fatal("404 must not invalidate the session")
	}
}

func TestLogsPassesStatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "Active" {
			t.Errorf("status = %q", got)
		}
		writeJSON(w, http.StatusOK, []LogEntry{{ID: "l1", Status: "Active"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(&Session{Token: "t", ExpiresAt: time.Now().Add(time.Hour)})

	logs, err := c.Logs(context.Background(), "Active")
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != "l1" {
		t.Fatalf("unexpected logs %+v", logs)
	}
}

func TestCurrentReturnsNilWhenNoActiveSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No active session."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(&Session{Token: "t", ExpiresAt: time.Now().Add(time.Hour)})

	entry, err := c.Current(context.Background())
	if err != nil || entry != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", entry, err)
	}
}

func TestSessionValid(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"nil", nil, false},
		{"empty token", &Session{ExpiresAt: now.Add(time.Hour)}, false},
		{"expired", &Session{Token: "t", ExpiresAt: now}, false},
		{"valid", &Session{Token: "t", ExpiresAt: now.Add(time.Minute)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.session.Valid(now); got != tc.want {
				t.Fatalf("Valid = %v, want %v", got, tc.want)
			}
		})
	}
}
