package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookshop/internal/domain"
)

type BookWriter interface {
	Create(ctx context.Context, book domain.Book) (*domain.Book, error)
}

// CSVImporter reads a book export and inserts one catalog row per record.
// The header must name a title and a price column; description is optional
// and unknown columns are ignored.
type CSVImporter struct {
	reader *csv.Reader
	books  BookWriter
}

func NewCSVImporter(r io.Reader, books BookWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		books:  books,
	}
}

// Run parses the CSV and creates one book per row, returning how many were
// inserted. A malformed row aborts the run; earlier rows stay inserted.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["title"]; !ok {
		return 0, errors.New("missing title column")
	}
	if _, ok := index["price"]; !ok {
		return 0, errors.New("missing price column")
	}

	imported := 0
	for row := 2; ; row++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", row, err)
		}

		title := pick(record, index, "title")
		if title == "" {
			return imported, fmt.Errorf("row %d: title required", row)
		}
		priceStr := pick(record, index, "price")
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return imported, fmt.Errorf("row %d: bad price %q", row, priceStr)
		}
		if price < 0 {
			return imported, fmt.Errorf("row %d: negative price %v", row, price)
		}

		if _, err := i.books.Create(ctx, domain.Book{
			Title:       title,
			Price:       price,
			Description: pick(record, index, "description"),
		}); err != nil {
			return imported, fmt.Errorf("create book %q: %w", title, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
