package handler

import "github.com/tasktracker/task-api/internal/core/domain"

// --- Request / Response types ---

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type taskRequest struct {
	TaskDescription string `json:"taskDescription" validate:"max=256"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type authResponse struct {
	Message string        `json:"message"`
	User    *userResponse `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type taskResponse struct {
	ID              int64  `json:"id"`
	UserID          string `json:"userId"`
	TaskDescription string `json:"taskDescription"`
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{ID: u.ID, Username: u.Username}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{ID: t.ID, UserID: t.UserID, TaskDescription: t.Description}
}

func toTaskResponses(tasks []domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	return out
}
