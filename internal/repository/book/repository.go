package book

import (
	"context"

	"bookshop/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Book, error)
	Search(ctx context.Context, query string) ([]domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	Create(ctx context.Context, book domain.Book) (*domain.Book, error)
	SeedIfEmpty(ctx context.Context, books []domain.Book) (int, error)
}
