package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasktracker/task-api/internal/core/domain"
	"github.com/tasktracker/task-api/internal/core/ports"
)

// Context keys set by Session.
const (
	ContextUserID = "user_id"
	ContextToken  = "session_token"
)

// TokenReader extracts a verified session token from the request cookie.
type TokenReader interface {
	Token(r *http.Request) (string, bool)
}

// Session resolves the session cookie and injects the caller into context.
// Requests without a live session pass through anonymously.
func Session(store ports.SessionStore, cookies TokenReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := cookies.Token(c.Request())
			if !ok {
				return next(c)
			}

			sess, err := store.Get(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				return next(c)
			case err != nil:
				return err
			}

			c.Set(ContextToken, sess.Token)
			c.Set(ContextUserID, sess.UserID)
			return next(c)
		}
	}
}

// RequireSession rejects requests that Session left anonymous.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, _ := c.Get(ContextUserID).(string); userID == "" {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
