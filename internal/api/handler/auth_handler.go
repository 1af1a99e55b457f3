package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-system/internal/core/domain"
	"github.com/accounthub/account-system/internal/core/ports"
)

// AuthHandler exposes the session lifecycle over HTTP: login, refresh,
// logout.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login authenticates credentials and returns an access/refresh pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.TokenPair
// @Failure      400   {object}  errorResponse
// @Router       /login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	pair, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password produce the same response so
		// the endpoint cannot be used to enumerate accounts.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token, optionally Bearer-prefixed"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /refresh/ [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	access, err := h.sessions.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if status, ok := sessionErrorStatus(err); ok {
			return c.JSON(status, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

// Logout revokes a refresh token. The token comes from the request body
// or, failing that, the Authorization header. A second logout with the
// same token reports it as revoked.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      logoutRequest  false  "Refresh token (optional; Authorization header is the fallback)"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	raw := req.RefreshToken
	if raw == "" {
		raw = bearerFromHeader(c.Request().Header.Get("Authorization"))
	}

	if err := h.sessions.Logout(c.Request().Context(), raw); err != nil {
		if status, ok := sessionErrorStatus(err); ok {
			return c.JSON(status, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}

// sessionErrorStatus maps session-manager failures to HTTP status codes.
// Expired and badly signed tokens collapse to a generic 401; everything
// the caller can fix is a 400.
func sessionErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrWrongTokenType),
		errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrMissingToken):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, true
	}
	return 0, false
}

// bearerFromHeader extracts the token from a "Bearer <token>" header value.
// Returns "" when the header is absent or uses a different scheme.
func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
