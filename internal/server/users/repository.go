package users

import (
	"context"
)

// Repository looks accounts up. Implementations return common.ErrorNotFound
// for unknown users.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
}
