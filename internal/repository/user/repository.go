package user

import (
	"context"

	"bookshop/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SeedIfEmpty(ctx context.Context, user domain.User) error
}
