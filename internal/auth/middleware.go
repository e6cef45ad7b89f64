package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/domain"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// Messages returned to the console when authentication fails.
const (
	MessageMissingToken = "Session expired or unauthorized."
	MessageInvalidToken = "Invalid token."
)

// AuthMiddleware validates bearer tokens. The identity is taken from the
// verified claims alone; no account lookup happens per request.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return apperrors.NewUnauthorized(MessageMissingToken)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized(MessageMissingToken)
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized(MessageInvalidToken)
	}

	identity := claims.Identity()
	c.Locals(identityKey, &identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
