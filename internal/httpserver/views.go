package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookshop/internal/domain"
	"bookshop/internal/session"
)

type bookListResponse struct {
	Books       []domain.Book   `json:"books"`
	SearchQuery string          `json:"searchQuery"`
	Notices     []session.Flash `json:"notices"`
}

type bookResponse struct {
	Book    *domain.Book    `json:"book"`
	Notices []session.Flash `json:"notices"`
}

type cartResponse struct {
	Books      []domain.Book   `json:"books"`
	TotalPrice float64         `json:"totalPrice"`
	Notices    []session.Flash `json:"notices"`
}

type accountUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type accountResponse struct {
	User    accountUser     `json:"user"`
	Notices []session.Flash `json:"notices"`
}

type aboutResponse struct {
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	Notices []session.Flash `json:"notices"`
}

// pageResponse renders a page that carries nothing but flash notices.
type pageResponse struct {
	Notices []session.Flash `json:"notices"`
}

// popNotices drains the session's flash queue, normalizing nil to an empty
// slice so the JSON field is always an array.
func popNotices(store *session.Store, sessionID string) []session.Flash {
	notices := store.PopFlashes(sessionID)
	if notices == nil {
		notices = []session.Flash{}
	}
	return notices
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// bookIDParam parses the :book_id route parameter. A value that is not an
// integer is reported as not-ok and handled like an unknown book.
func bookIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// redirectNotFound flashes the missing-book notice and redirects to target.
func redirectNotFound(c *gin.Context, store *session.Store, sessionID, target string) {
	store.PushFlash(sessionID, session.FlashDanger, "Book not found.")
	c.Redirect(http.StatusFound, target)
}
