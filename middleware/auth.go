// Package middleware carries the request-scoped concerns shared by both
// deployments: the JWT write gate, structured request logging and
// Redis-backed rate limiting.
package middleware

import (
	"strconv"
	"strings"

	"inkwell/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// userIDKey is the c.Locals key under which the verified account ID travels.
// The ID is placed there once per request by WriteGate after signature
// verification; downstream handlers read it from Locals only and never from a
// caller-supplied header.
const userIDKey = "userID"

// WriteGate returns middleware guarding non-read operations. GET requests
// pass through untouched regardless of credentials. Any other method requires
// an Authorization bearer token signed with secret; on failure the request is
// rejected with 401 and no downstream handler runs.
func WriteGate(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			return c.Next()
		}

		tokenString := bearerToken(c)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, err := VerifyToken(tokenString, secret)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// VerifyToken parses an HS256 token and returns the account ID from its
// subject claim.
func VerifyToken(tokenString, secret string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(userID), nil
}

// AuthenticatedUserID returns the verified account ID stored by WriteGate,
// or (0, false) when the request was not gated (reads).
func AuthenticatedUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(userIDKey).(uint)
	return id, ok
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
