package user

import (
	"context"

	"vehiclerental/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
