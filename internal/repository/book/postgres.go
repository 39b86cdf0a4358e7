package book

import (
	"context"
	"errors"
	"io"
	"log"

	"bookshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Book, error) {
	const q = `
SELECT id, title, price, description, created_at
FROM books
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("book repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		r.logger.Printf("book repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("book repo: list count=%d", len(books))
	return books, nil
}

func (r *postgresRepo) Search(ctx context.Context, query string) ([]domain.Book, error) {
	const q = `
SELECT id, title, price, description, created_at
FROM books
WHERE title ILIKE '%' || $1 || '%'
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, query)
	if err != nil {
		r.logger.Printf("book repo: search query=%q error=%v", query, err)
		return nil, err
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		r.logger.Printf("book repo: search rows query=%q error=%v", query, err)
		return nil, err
	}
	r.logger.Printf("book repo: search query=%q count=%d", query, len(books))
	return books, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	const q = `
SELECT id, title, price, description, created_at
FROM books
WHERE id = $1
`
	var b domain.Book
	err := r.pool.QueryRow(ctx, q, id).Scan(&b.ID, &b.Title, &b.Price, &b.Description, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("book repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("book repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Create(ctx context.Context, book domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (title, price, description)
VALUES ($1, $2, $3)
RETURNING id, created_at
`
	res := book
	err := r.pool.QueryRow(ctx, q, book.Title, book.Price, book.Description).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("book repo: create title=%q error=%v", book.Title, err)
		return nil, err
	}
	r.logger.Printf("book repo: created id=%d title=%q", res.ID, res.Title)
	return &res, nil
}

// SeedIfEmpty inserts the given books in one transaction, but only when the
// table holds no rows at all. Repeat calls are no-ops.
func (r *postgresRepo) SeedIfEmpty(ctx context.Context, books []domain.Book) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, b := range books {
		if _, err := tx.Exec(ctx, `
INSERT INTO books (title, price, description)
VALUES ($1, $2, $3)
`, b.Title, b.Price, b.Description); err != nil {
			r.logger.Printf("book repo: seed title=%q error=%v", b.Title, err)
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	r.logger.Printf("book repo: seeded count=%d", len(books))
	return len(books), nil
}

func scanBooks(rows pgx.Rows) ([]domain.Book, error) {
	var result []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Price, &b.Description, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
