package catalog

import (
	"context"
	"errors"
	"strings"

	"bookshop/internal/domain"
	bookrepo "bookshop/internal/repository/book"
)

// ErrInvalidBook rejects inserts with a blank title or a negative price.
var ErrInvalidBook = errors.New("invalid book")

type Service struct {
	repo bookrepo.Repository
}

func New(repo bookrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the whole catalog in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.List(ctx)
}

// Search returns books whose title contains the query, ignoring case. A blank
// query matches the whole catalog, in the same order List returns it.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Add inserts a new title through the administrative path.
func (s *Service) Add(ctx context.Context, title string, price float64, description string) (*domain.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" || price < 0 {
		return nil, ErrInvalidBook
	}
	return s.repo.Create(ctx, domain.Book{
		Title:       title,
		Price:       price,
		Description: description,
	})
}
