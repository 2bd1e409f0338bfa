package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tasktracker/task-api/internal/api/middleware"
	"github.com/tasktracker/task-api/internal/core/domain"
)

// ctxUserID returns the caller injected by the Session middleware. An empty
// user id means the request is anonymous.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}

// ctxToken returns the session token the request arrived with, or "".
func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.ContextToken).(string)
	return token
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}
