package domain

import "time"

// Session binds an opaque token to an authenticated user.
type Session struct {
	Token      string
	UserID     string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// Expired reports whether the session has been idle for longer than idle.
func (s *Session) Expired(now time.Time, idle time.Duration) bool {
	return now.Sub(s.LastSeenAt) > idle
}
