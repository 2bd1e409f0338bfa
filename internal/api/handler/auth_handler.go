package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasktracker/task-api/internal/api/metrics"
	"github.com/tasktracker/task-api/internal/core/domain"
	"github.com/tasktracker/task-api/internal/core/ports"
)

// CookieIssuer turns session tokens into response cookies.
type CookieIssuer interface {
	Cookie(token string) (*http.Cookie, error)
	Clear() *http.Cookie
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieIssuer
}

func NewAuthHandler(authService ports.AuthService, cookies CookieIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Signup creates a new user account and opens a session for it.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, sess, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password, ctxToken(c))
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		return err
	}
	if err := h.setSession(c, sess); err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/api/auth/profile")
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and opens a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/session [post]
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, sess, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, ctxToken(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	if err := h.setSession(c, sess); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Message: "Login successful", User: toUserResponse(user)})
}

// Logout ends the current session, if any.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/session [delete]
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), ctxToken(c)); err != nil {
		return err
	}
	c.SetCookie(h.cookies.Clear())
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Profile returns the signed-in user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/session [get]
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) setSession(c echo.Context, sess *domain.Session) error {
	cookie, err := h.cookies.Cookie(sess.Token)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)
	return nil
}

func signupResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
