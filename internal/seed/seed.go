package seed

import (
	"context"
	"fmt"
	"io"
	"log"

	"bookshop/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Default account installed on an empty user table.
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin"
)

type bookSeeder interface {
	SeedIfEmpty(ctx context.Context, books []domain.Book) (int, error)
}

type userSeeder interface {
	SeedIfEmpty(ctx context.Context, user domain.User) error
}

// DefaultBooks returns the demo catalog installed on an empty book table.
func DefaultBooks() []domain.Book {
	return []domain.Book{
		{Title: "The Great Gatsby", Price: 10.99, Description: "A novel by F. Scott Fitzgerald."},
		{Title: "1984", Price: 8.99, Description: "A dystopian novel by George Orwell."},
		{Title: "To Kill a Mockingbird", Price: 12.49, Description: "A novel by Harper Lee."},
		{Title: "Pride and Prejudice", Price: 6.99, Description: "A classic novel by Jane Austen."},
		{Title: "The Catcher in the Rye", Price: 9.99, Description: "A novel by J.D. Salinger."},
		{Title: "Moby Dick", Price: 11.99, Description: "A novel by Herman Melville."},
		{Title: "War and Peace", Price: 14.99, Description: "A historical novel by Leo Tolstoy."},
		{Title: "The Odyssey", Price: 7.49, Description: "An epic poem by Homer."},
		{Title: "The Hobbit", Price: 13.99, Description: "A fantasy novel by J.R.R. Tolkien."},
	}
}

// Apply installs the demo catalog and the default account on empty tables.
// Tables that already hold rows are left untouched, so repeat runs are no-ops.
func Apply(ctx context.Context, books bookSeeder, users userSeeder, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	inserted, err := books.SeedIfEmpty(ctx, DefaultBooks())
	if err != nil {
		return fmt.Errorf("seed books: %w", err)
	}
	if inserted > 0 {
		logger.Printf("seed: inserted %d books", inserted)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	if err := users.SeedIfEmpty(ctx, domain.User{
		Username:     DefaultUsername,
		PasswordHash: string(hashed),
	}); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	return nil
}
