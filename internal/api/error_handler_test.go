package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tasktracker/task-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: task length cannot exceed 256 characters", domain.ErrInvalidInput), wantCode: http.StatusBadRequest, wantMsg: "invalid input: task length cannot exceed 256 characters"},
		{name: "bad credentials", err: domain.ErrInvalidCredentials, wantCode: http.StatusUnauthorized, wantMsg: "either username or password is incorrect"},
		{name: "no session", err: domain.ErrUnauthenticated, wantCode: http.StatusUnauthorized, wantMsg: "not authenticated"},
		{name: "forbidden", err: domain.ErrForbidden, wantCode: http.StatusForbidden},
		{name: "task missing", err: fmt.Errorf("get: %w", domain.ErrTaskNotFound), wantCode: http.StatusNotFound, wantMsg: "task not found"},
		{name: "user missing", err: domain.ErrUserNotFound, wantCode: http.StatusNotFound, wantMsg: "user not found"},
		{name: "conflict", err: domain.ErrConflict, wantCode: http.StatusConflict, wantMsg: "account already exists"},
		{name: "echo error", err: echo.NewHTTPError(http.StatusBadRequest, "invalid task id"), wantCode: http.StatusBadRequest, wantMsg: "invalid task id"},
		{name: "store failure", err: errors.New("dial tcp: connection refused"), wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.New(&logs))(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if tt.wantMsg != "" && resp.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, resp.Error)
			}
			if tt.wantCode == http.StatusInternalServerError {
				if strings.Contains(resp.Error, "connection refused") {
					t.Fatalf("internal error leaked: %s", resp.Error)
				}
				if !strings.Contains(logs.String(), "connection refused") {
					t.Fatalf("internal error not logged: %s", logs.String())
				}
			}
		})
	}
}

func TestHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("committed response overwritten: %d", rec.Code)
	}
}
