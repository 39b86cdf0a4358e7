package cart

import (
	"context"
	"errors"

	"bookshop/internal/domain"
)

type sessionStore interface {
	AddCartItem(id string, bookID int64) bool
	RemoveCartItem(id string, bookID int64) bool
	ClearCart(id string) bool
	CartItems(id string) ([]int64, bool)
}

type bookGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
}

// Service mutates the per-session cart and resolves it against the catalog.
type Service struct {
	sessions sessionStore
	books    bookGetter
}

func New(sessions sessionStore, books bookGetter) *Service {
	return &Service{sessions: sessions, books: books}
}

// Add appends the book id to the session cart. The id is not checked against
// the catalog; ids that never resolve simply drop out at read time.
func (s *Service) Add(sessionID string, bookID int64) error {
	if !s.sessions.AddCartItem(sessionID, bookID) {
		return domain.ErrNotFound
	}
	return nil
}

// Remove deletes every occurrence of the book id from the session cart.
func (s *Service) Remove(sessionID string, bookID int64) error {
	if !s.sessions.RemoveCartItem(sessionID, bookID) {
		return domain.ErrNotFound
	}
	return nil
}

// Clear empties the session cart.
func (s *Service) Clear(sessionID string) error {
	if !s.sessions.ClearCart(sessionID) {
		return domain.ErrNotFound
	}
	return nil
}

// Resolve maps each stored cart id through the catalog in insertion order and
// sums the prices. Ids that no longer resolve are skipped; duplicates are
// listed and summed once per occurrence. An empty or fully stale cart yields
// no books and a zero total.
func (s *Service) Resolve(ctx context.Context, sessionID string) ([]domain.Book, float64, error) {
	ids, ok := s.sessions.CartItems(sessionID)
	if !ok {
		return nil, 0, domain.ErrNotFound
	}

	var books []domain.Book
	var total float64
	for _, id := range ids {
		b, err := s.books.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, 0, err
		}
		books = append(books, *b)
		total += b.Price
	}
	return books, total, nil
}
