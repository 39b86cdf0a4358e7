package seed

import (
	"context"
	"testing"

	"bookshop/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type stubBookSeeder struct {
	got   []domain.Book
	calls int
}

func (s *stubBookSeeder) SeedIfEmpty(_ context.Context, books []domain.Book) (int, error) {
	s.calls++
	if s.calls == 1 {
		s.got = books
		return len(books), nil
	}
	return 0, nil
}

type stubUserSeeder struct {
	got   *domain.User
	calls int
}

func (s *stubUserSeeder) SeedIfEmpty(_ context.Context, u domain.User) error {
	s.calls++
	if s.calls == 1 {
		clone := u
		s.got = &clone
	}
	return nil
}

func TestDefaultBooks(t *testing.T) {
	books := DefaultBooks()
	if len(books) != 9 {
		t.Fatalf("expected 9 default books, got %d", len(books))
	}

	var found *domain.Book
	for i := range books {
		if books[i].Title == "1984" {
			found = &books[i]
		}
	}
	if found == nil {
		t.Fatalf("expected default catalog to include 1984")
	}
	if found.Price != 8.99 {
		t.Fatalf("expected 1984 priced 8.99, got %v", found.Price)
	}
}

func TestApply(t *testing.T) {
	books := &stubBookSeeder{}
	users := &stubUserSeeder{}

	if err := Apply(context.Background(), books, users, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(books.got) != len(DefaultBooks()) {
		t.Fatalf("expected full default catalog, got %d books", len(books.got))
	}
	if users.got == nil || users.got.Username != DefaultUsername {
		t.Fatalf("unexpected seeded user %+v", users.got)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users.got.PasswordHash), []byte(DefaultPassword)); err != nil {
		t.Fatalf("expected default password hash to verify: %v", err)
	}

	// A second run reaches the seeders again; emptiness checks live there.
	if err := Apply(context.Background(), books, users, nil); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if books.calls != 2 || users.calls != 2 {
		t.Fatalf("expected seeders called once per run, got %d and %d", books.calls, users.calls)
	}
}
