package middleware

import (
	"strings"

	"rapidreads/internal/apperrors"
	"rapidreads/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const identityKey = "identity"

// TokenVerifier decodes a bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (*models.Identity, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(tokens TokenVerifier, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authHeader == "" {
			return apperrors.ErrUnauthenticated
		}

		// Expected format: "Bearer <token>"
		scheme, tokenString, _ := strings.Cut(authHeader, " ")
		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			return apperrors.ErrUnauthenticated
		}
		if !strings.EqualFold(scheme, "Bearer") {
			log.Warn("unsupported authorization scheme", zap.String("scheme", scheme))
			return apperrors.ErrInvalidToken
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			log.Warn("JWT validation failed", zap.Error(err))
			return apperrors.ErrInvalidToken
		}

		// Store the identity in Fiber context for subsequent handlers
		c.Locals(identityKey, identity)

		return c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(c *fiber.Ctx) (*models.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*models.Identity)
	return identity, ok && identity != nil
}
