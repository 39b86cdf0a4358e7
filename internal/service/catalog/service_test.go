package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookshop/internal/domain"
)

type stubRepo struct {
	books       []domain.Book
	listCalls   int
	searchCalls int
	lastQuery   string
	created     []domain.Book
	createErr   error
}

func (s *stubRepo) List(_ context.Context) ([]domain.Book, error) {
	s.listCalls++
	return s.books, nil
}

func (s *stubRepo) Search(_ context.Context, query string) ([]domain.Book, error) {
	s.searchCalls++
	s.lastQuery = query
	var out []domain.Book
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(query)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	for _, b := range s.books {
		if b.ID == id {
			clone := b
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	clone := b
	clone.ID = int64(len(s.created) + 1)
	s.created = append(s.created, clone)
	return &clone, nil
}

func (s *stubRepo) SeedIfEmpty(_ context.Context, books []domain.Book) (int, error) {
	if len(s.books) > 0 {
		return 0, nil
	}
	s.books = append(s.books, books...)
	return len(books), nil
}

func testBooks() []domain.Book {
	return []domain.Book{
		{ID: 1, Title: "The Great Gatsby", Price: 10.99},
		{ID: 2, Title: "1984", Price: 8.99},
		{ID: 3, Title: "Moby Dick", Price: 11.99},
	}
}

func TestSearchBlankQueryListsAll(t *testing.T) {
	repo := &stubRepo{books: testBooks()}
	svc := New(repo)
	ctx := context.Background()

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	for _, q := range []string{"", "   "} {
		got, err := svc.Search(ctx, q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(got) != len(all) {
			t.Fatalf("expected %d books for query %q, got %d", len(all), q, len(got))
		}
		for i := range got {
			if got[i].ID != all[i].ID {
				t.Fatalf("expected same order as List, got %+v", got)
			}
		}
	}
	if repo.searchCalls != 0 {
		t.Fatalf("expected blank queries to bypass Search, got %d calls", repo.searchCalls)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	repo := &stubRepo{books: testBooks()}
	svc := New(repo)

	got, err := svc.Search(context.Background(), "great")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "The Great Gatsby" {
		t.Fatalf("expected The Great Gatsby, got %+v", got)
	}
}

func TestSearchTrimsQuery(t *testing.T) {
	repo := &stubRepo{books: testBooks()}
	svc := New(repo)

	if _, err := svc.Search(context.Background(), "  1984  "); err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.lastQuery != "1984" {
		t.Fatalf("expected trimmed query, got %q", repo.lastQuery)
	}
}

func TestGet(t *testing.T) {
	svc := New(&stubRepo{books: testBooks()})
	ctx := context.Background()

	got, err := svc.Get(ctx, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != 2 || got.Title != "1984" {
		t.Fatalf("unexpected book %+v", got)
	}

	if _, err := svc.Get(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddValidation(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "  ", 1.0, ""); !errors.Is(err, ErrInvalidBook) {
		t.Fatalf("expected ErrInvalidBook for blank title, got %v", err)
	}
	if _, err := svc.Add(ctx, "Dune", -1, ""); !errors.Is(err, ErrInvalidBook) {
		t.Fatalf("expected ErrInvalidBook for negative price, got %v", err)
	}

	got, err := svc.Add(ctx, "  Dune ", 9.99, "A novel by Frank Herbert.")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.Title != "Dune" {
		t.Fatalf("expected trimmed title, got %q", got.Title)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one create, got %d", len(repo.created))
	}
}
