package ports

import (
	"context"

	"github.com/tasktracker/task-api/internal/core/domain"
)

// SessionStore keeps server-side sessions keyed by token.
type SessionStore interface {
	Create(ctx context.Context, userID string) (*domain.Session, error)
	// Get returns the session and refreshes its idle timer. Unknown and
	// expired tokens yield domain.ErrSessionNotFound.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Delete removes the session. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
}
