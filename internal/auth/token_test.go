package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/ops-console/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return base }

	identity := domain.Identity{ID: "u-1", Role: domain.RoleManager, Name: "Dana"}
	token, exp, err := tm.GenerateToken(identity)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if want := base.Add(7 * 24 * time.Hour); !exp.Equal(want) {
		t.Fatalf("expiry = %v, want %v", exp, want)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got := claims.Identity(); got != identity {
		t.Fatalf("identity = %+v, want %+v", got, identity)
	}
	if claims.Subject != identity.ID {
		t.Fatalf("sub = %q, want %q", claims.Subject, identity.ID)
	}
}

func TestParseTokenRejects(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	issuer := NewTokenManager("secret", 60)
	issuer.now = func() time.Time { return base }
	token, _, err := issuer.GenerateToken(domain.Identity{ID: "u-1", Role: domain.RoleEmployee, Name: "Eve"})
	if err != nil {
		t.Fatal(err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ID: "u-1", Role: domain.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		tm    func() *TokenManager
		token string
	}{
		{
			name: "expired",
			tm: func() *TokenManager {
				tm := NewTokenManager("secret", 60)
				tm.now = func() time.Time { return base.Add(2 * time.Hour) }
				return tm
			},
			token: token,
		},
		{
			name: "wrong secret",
			tm: func() *TokenManager {
				tm := NewTokenManager("other", 60)
				tm.now = func() time.Time { return base }
				return tm
			},
			token: token,
		},
		{
			name:  "garbage",
			tm:    func() *TokenManager { return NewTokenManager("secret", 60) },
			token: "not-a-jwt",
		},
		{
			name:  "unsigned",
			tm:    func() *TokenManager { return NewTokenManager("secret", 60) },
			token: noneToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tm().ParseToken(tt.token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
