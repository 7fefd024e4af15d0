package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trucklog/joblog-api/internal/core/ports"
)

// sessionHeader carries the opaque session id on logout/session checks. The
// session is a cache of the last successful login; the JWT remains the
// credential for API calls.
const sessionHeader = "X-Session-ID"

// AuthHandler handles login, logout, and session checks.
type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionService
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// Login validates credentials and returns a JWT plus a session id.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(
		c.Request().Context(),
		strings.TrimSpace(req.Username),
		strings.TrimSpace(req.Password),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		SessionID: result.SessionID,
		User:      result.User,
	})
}

// Logout clears the session named by the X-Session-ID header. Clearing an
// already-cleared session succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Param        X-Session-ID  header  string  true  "Session identifier"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id := c.Request().Header.Get(sessionHeader)
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session id")
	}

	if err := h.sessions.Clear(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports whether the session is still within its validity window.
//
// @Summary      Check session validity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        X-Session-ID  header    string  true  "Session identifier"
// @Success      200  {object}  sessionResponse
// @Failure      400  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	id := c.Request().Header.Get(sessionHeader)
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session id")
	}

	valid, session, err := h.sessions.Check(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Valid: valid, Session: session})
}
