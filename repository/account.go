package repository

import (
	"context"

	"github.com/diasKarataev/todo-client/domain"
)

// AccountRepository covers the unauthenticated entry points plus the
// identity endpoints behind the bearer gate.
type AccountRepository interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) error
	UserInfo(ctx context.Context) (*domain.User, error)
	ResendActivation(ctx context.Context) error
}
