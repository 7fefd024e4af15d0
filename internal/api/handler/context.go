package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trucklog/joblog-api/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - a non-empty user_id is required; without it the JWT is structurally
//     valid but cannot be tied to a record — reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	username, _ := c.Get("username").(string)
	return ports.Actor{UserID: userID, Username: username, Role: role}, nil
}
