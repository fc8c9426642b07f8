package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
	apperrors "github.com/rabiijabrour/workers-production-system/pkg/util"
)

// RequireAdmin gates administrative operations.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if claims.Role != domain.RoleAdmin {
			return apperrors.NewAccessDenied("admin role required")
		}
		return c.Next()
	}
}

// CanManageUser reports whether the caller may update the target account:
// admins may update anyone, other callers only themselves.
func CanManageUser(claims *Claims, targetID string) bool {
	if claims == nil {
		return false
	}
	return claims.IsAdmin() || claims.UserID == targetID
}
