package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/domain"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

func newTestApp(tm *TokenManager, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var de *apperrors.DomainError
			if errors.As(err, &de) {
				return c.Status(de.HTTPStatus).SendString(de.Message)
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	handlers := append([]fiber.Handler{NewAuthMiddleware(tm).Handle}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(identity.ID + "|" + string(identity.Role) + "|" + identity.Name)
	})
	app.Get("/me", handlers...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	token, _, err := tm.GenerateToken(domain.Identity{ID: "u-7", Role: domain.RoleEmployee, Name: "Sam"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, MessageMissingToken},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, MessageMissingToken},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, MessageInvalidToken},
		{"valid token", "Bearer " + token, http.StatusOK, "u-7|Employee|Sam"},
	}

	app := newTestApp(tm)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			if got := string(body); got != tt.wantBody {
				t.Fatalf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := newTestApp(tm, RequireRole(domain.RoleAdmin, domain.RoleManager))

	tests := []struct {
		role       domain.Role
		wantStatus int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleManager, http.StatusOK},
		{domain.RoleEmployee, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			token, _, err := tm.GenerateToken(domain.Identity{ID: "u-1", Role: tt.role, Name: "X"})
			if err != nil {
				t.Fatal(err)
			}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
