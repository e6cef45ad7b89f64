package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/domain"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// RequireRole ensures the caller holds one of the allowed roles.
// With no roles given any authenticated caller passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MessageMissingToken)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
