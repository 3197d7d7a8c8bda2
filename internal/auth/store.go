package auth

import (
	"context"
	"time"
)

// User is the stored principal record.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserStore describes the persistence operations the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// IncrementUsage bumps the user's request counter and returns the new
	// total.
	IncrementUsage(ctx context.Context, userID string) (int, error)
}
