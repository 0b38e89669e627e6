// Package session keeps authenticated sessions with a sliding inactivity
// expiry. A session that is not touched within the timeout is gone.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrSessionExpired = errors.New("session expired or revoked")

// Principal is the authenticated user bound to a request.
type Principal struct {
	SessionID    string    `json:"session_id"`
	UserID       uint      `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

// Store persists sessions. Touch resets the inactivity window.
type Store interface {
	Create(ctx context.Context, p Principal) (Principal, error)
	Touch(ctx context.Context, id string) (Principal, error)
	Revoke(ctx context.Context, id string) error
	Timeout() time.Duration
}
