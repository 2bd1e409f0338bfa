package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tasktracker/task-api/internal/api/middleware"
	"github.com/tasktracker/task-api/internal/core/domain"
)

type stubTaskService struct {
	listFn   func(ctx context.Context, userID string) ([]domain.Task, error)
	createFn func(ctx context.Context, userID, description string) (*domain.Task, error)
	getFn    func(ctx context.Context, userID string, id int64) (*domain.Task, error)
	updateFn func(ctx context.Context, userID string, id int64, description string) error
	deleteFn func(ctx context.Context, userID string, id int64) error
}

func (s *stubTaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.listFn(ctx, userID)
}

func (s *stubTaskService) Create(ctx context.Context, userID, description string) (*domain.Task, error) {
	return s.createFn(ctx, userID, description)
}

func (s *stubTaskService) Get(ctx context.Context, userID string, id int64) (*domain.Task, error) {
	return s.getFn(ctx, userID, id)
}

func (s *stubTaskService) Update(ctx context.Context, userID string, id int64, description string) error {
	return s.updateFn(ctx, userID, id, description)
}

func (s *stubTaskService) Delete(ctx context.Context, userID string, id int64) error {
	return s.deleteFn(ctx, userID, id)
}

func newTaskContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
	}
	return c, rec
}

func TestTaskHandler_List(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string) ([]domain.Task, error) {
			if userID != "alice" {
				t.Fatalf("unexpected user %q", userID)
			}
			return []domain.Task{{ID: 1, UserID: "alice", Description: "buy milk"}}, nil
		},
	}
	handler := NewTaskHandler(stub)
	c, rec := newTaskContext(http.MethodGet, "/api/tasks", "", "alice")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["taskDescription"] != "buy milk" || resp[0]["userId"] != "alice" || resp[0]["id"] != float64(1) {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestTaskHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string) ([]domain.Task, error) {
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)
	c, rec := newTaskContext(http.MethodGet, "/api/tasks", "", "alice")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestTaskHandler_RequiresSession(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})
	c, _ := newTaskContext(http.MethodGet, "/api/tasks", "", "")

	if err := handler.List(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID, description string) (*domain.Task, error) {
			if userID != "alice" || description != "buy milk" {
				t.Fatalf("unexpected args: %s %s", userID, description)
			}
			return &domain.Task{ID: 7, UserID: userID, Description: description}, nil
		},
	}
	handler := NewTaskHandler(stub)
	// a client supplied owner is ignored
	c, rec := newTaskContext(http.MethodPost, "/api/tasks", `{"taskDescription":"buy milk","userId":"mallory"}`, "alice")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/api/tasks/7" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestTaskHandler_Create_TooLong(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID, description string) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)
	body := `{"taskDescription":"` + strings.Repeat("a", 257) + `"}`
	c, _ := newTaskContext(http.MethodPost, "/api/tasks", body, "alice")

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "taskDescription cannot exceed 256 characters") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestTaskHandler_Create_InvalidPayload(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})
	c, _ := newTaskContext(http.MethodPost, "/api/tasks", "{", "alice")

	var he *echo.HTTPError
	if err := handler.Create(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Get(t *testing.T) {
	tests := []struct {
		name     string
		param    string
		err      error
		wantErr  error
		wantCode int
	}{
		{name: "found", param: "1", wantCode: http.StatusOK},
		{name: "not found", param: "999", err: domain.ErrTaskNotFound, wantErr: domain.ErrTaskNotFound},
		{name: "forbidden", param: "2", err: domain.ErrForbidden, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubTaskService{
				getFn: func(ctx context.Context, userID string, id int64) (*domain.Task, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.Task{ID: id, UserID: userID, Description: "x"}, nil
				},
			}
			handler := NewTaskHandler(stub)
			c, rec := newTaskContext(http.MethodGet, "/api/tasks/"+tt.param, "", "alice")
			c.SetParamNames("id")
			c.SetParamValues(tt.param)

			err := handler.Get(c)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantCode != 0 && rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestTaskHandler_BadID(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	for _, param := range []string{"abc", "0", "-3"} {
		c, _ := newTaskContext(http.MethodGet, "/api/tasks/"+param, "", "alice")
		c.SetParamNames("id")
		c.SetParamValues(param)

		var he *echo.HTTPError
		if err := handler.Get(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400 HTTPError, got %v", param, err)
		}
	}
}

func TestTaskHandler_Update(t *testing.T) {
	var got string
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, userID string, id int64, description string) error {
			if id != 3 {
				t.Fatalf("unexpected id %d", id)
			}
			got = description
			return nil
		},
	}
	handler := NewTaskHandler(stub)
	c, rec := newTaskContext(http.MethodPut, "/api/tasks/3", `{"taskDescription":"walk dog"}`, "alice")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got != "walk dog" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestTaskHandler_Update_LengthCheckedAfterOwnership(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, userID string, id int64, description string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewTaskHandler(stub)
	body := `{"taskDescription":"` + strings.Repeat("a", 300) + `"}`
	c, _ := newTaskContext(http.MethodPut, "/api/tasks/3", body, "bob")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, userID string, id int64) error {
			if userID != "alice" || id != 4 {
				t.Fatalf("unexpected args: %s %d", userID, id)
			}
			return nil
		},
	}
	handler := NewTaskHandler(stub)
	c, rec := newTaskContext(http.MethodDelete, "/api/tasks/4", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
