package repository

import (
	"context"

	"github.com/minseo-cho/gomall/internal/domain/model"
)

// UserRepository describes persistence operations for shop customers.
type UserRepository interface {
	Create(ctx context.Context, login, email, passwordHash string) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
