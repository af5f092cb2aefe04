package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/model"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/utils"
)

// UserLookup resolves a token subject to a live user row.
// *repository.UserRepo satisfies it.
type UserLookup interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the authenticated user ID into the request context
// under the "user_id" key. The provided secret must match the one used
// when issuing tokens. When users is non-nil the subject is also
// resolved against the credential store, so tokens held by deleted
// accounts stop working before they expire; nil skips the lookup.
// Missing, expired or tampered tokens yield 401 with a message-only
// body.
func JWTAuth(secret string, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token failed"})
			}

			if users != nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				defer cancel()
				if _, err := users.GetByID(ctx, userID); err != nil {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token failed"})
				}
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
