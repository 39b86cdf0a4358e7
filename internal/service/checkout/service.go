package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookshop/internal/domain"
)

var (
	// ErrEmptyName rejects a blank recipient name.
	ErrEmptyName = errors.New("name required")
	// ErrEmptyAddress rejects a blank shipping address.
	ErrEmptyAddress = errors.New("address required")
)

type bookGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
}

// Service runs the two-step purchase confirmation for a single book. It is
// independent of the cart and records nothing.
type Service struct {
	books bookGetter
}

func New(books bookGetter) *Service {
	return &Service{books: books}
}

// Present returns the book shown on the confirmation step.
func (s *Service) Present(ctx context.Context, bookID int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, bookID)
}

// CompleteInput captures the shipping fields of the confirmation form.
type CompleteInput struct {
	Name    string
	Address string
}

// Complete finishes the purchase. No charge is made and no order is stored;
// the returned confirmation message is the only artifact.
func (s *Service) Complete(ctx context.Context, bookID int64, in CompleteInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	if name == "" {
		return "", ErrEmptyName
	}
	if address == "" {
		return "", ErrEmptyAddress
	}

	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Purchase of %q completed successfully! Your order will be shipped to: %s.", b.Title, address), nil
}
