package domain

import "unicode/utf8"

// MaxTaskDescriptionLength is the upper bound for a task description, in characters.
const MaxTaskDescriptionLength = 256

// Task is a single to-do item. UserID is always taken from the caller's
// session and never from client input.
type Task struct {
	ID          int64  `json:"id"`
	UserID      string `json:"userId"`
	Description string `json:"taskDescription"`
}

// ValidTaskDescription reports whether d fits within MaxTaskDescriptionLength.
func ValidTaskDescription(d string) bool {
	return utf8.RuneCountInString(d) <= MaxTaskDescriptionLength
}

// OwnedBy reports whether the task belongs to userID.
func (t *Task) OwnedBy(userID string) bool {
	return t.UserID == userID
}
