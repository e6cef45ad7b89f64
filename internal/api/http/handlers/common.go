package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/validation"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// bind decodes the JSON body into req and validates it. An empty body
// decodes to the zero value.
func bind(c *fiber.Ctx, req any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	return validation.Struct(req)
}

// caller returns the identity placed by the auth middleware.
func caller(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized(auth.MessageMissingToken)
	}
	return *identity, nil
}

func splitQuery(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// resourceID returns the :id path parameter. Ids are UUIDs, so anything else
// names a row that cannot exist.
func resourceID(c *fiber.Ctx, resource string) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperrors.NewNotFound(resource, nil)
	}
	return id, nil
}
