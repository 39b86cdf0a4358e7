package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookshop/internal/domain"
	checkoutsvc "bookshop/internal/service/checkout"
	"bookshop/internal/session"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCatalogSvc struct {
	books     []domain.Book
	err       error
	lastQuery string
}

func (s *stubCatalogSvc) Search(_ context.Context, query string) ([]domain.Book, error) {
	s.lastQuery = query
	return s.books, s.err
}

type stubUserSvc struct {
	user        *domain.User
	registerErr error
	authErr     error
	getErr      error
}

func (s *stubUserSvc) Register(_ context.Context, _, _ string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubUserSvc) Authenticate(_ context.Context, _, _ string) (*domain.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.user, nil
}

func (s *stubUserSvc) Get(_ context.Context, _ int64) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

type stubCartSvc struct {
	books      []domain.Book
	total      float64
	resolveErr error
	opErr      error
	added      []int64
	removed    []int64
	cleared    int
}

func (s *stubCartSvc) Add(_ string, bookID int64) error {
	if s.opErr != nil {
		return s.opErr
	}
	s.added = append(s.added, bookID)
	return nil
}

func (s *stubCartSvc) Remove(_ string, bookID int64) error {
	if s.opErr != nil {
		return s.opErr
	}
	s.removed = append(s.removed, bookID)
	return nil
}

func (s *stubCartSvc) Clear(_ string) error {
	if s.opErr != nil {
		return s.opErr
	}
	s.cleared++
	return nil
}

func (s *stubCartSvc) Resolve(_ context.Context, _ string) ([]domain.Book, float64, error) {
	return s.books, s.total, s.resolveErr
}

type stubCheckoutSvc struct {
	book        *domain.Book
	presentErr  error
	message     string
	completeErr error
	lastInput   checkoutsvc.CompleteInput
}

func (s *stubCheckoutSvc) Present(_ context.Context, _ int64) (*domain.Book, error) {
	if s.presentErr != nil {
		return nil, s.presentErr
	}
	return s.book, nil
}

func (s *stubCheckoutSvc) Complete(_ context.Context, _ int64, in checkoutsvc.CompleteInput) (string, error) {
	s.lastInput = in
	if s.completeErr != nil {
		return "", s.completeErr
	}
	return s.message, nil
}

// testDeps returns a Deps wired with fresh stubs and a live session store.
// Tests override individual fields before building the router.
func testDeps() (Deps, *session.Store) {
	store := session.NewStore(time.Hour)
	deps := Deps{
		Sessions:    store,
		CatalogSvc:  &stubCatalogSvc{},
		UserSvc:     &stubUserSvc{},
		CartSvc:     &stubCartSvc{},
		CheckoutSvc: &stubCheckoutSvc{},
		SessionTTL:  time.Hour,
	}
	return deps, store
}

// sessionCookie pulls the session_id cookie from a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookieName)
	return nil
}

// doRequest runs one request through the router, carrying cookie when set.
func doRequest(router http.Handler, method, target, form string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
