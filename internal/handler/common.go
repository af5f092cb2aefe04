package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user ID placed into the context
// by the JWT middleware. Handlers behind the middleware should treat an
// error here as an unauthorized request.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("no authenticated user in context")
}
