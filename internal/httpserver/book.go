package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshop/internal/domain"
	checkoutsvc "bookshop/internal/service/checkout"
	"bookshop/internal/session"
)

type completeCheckoutRequest struct {
	Name    string `form:"name" binding:"required"`
	Address string `form:"address" binding:"required"`
}

// listBooksHandler serves the storefront: every book, or the title matches
// for the optional ?search= query.
func listBooksHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		query := c.Query("search")

		books, err := deps.CatalogSvc.Search(c.Request.Context(), query)
		if err != nil {
			internalError(c, err)
			return
		}
		if books == nil {
			books = []domain.Book{}
		}

		c.JSON(http.StatusOK, bookListResponse{
			Books:       books,
			SearchQuery: query,
			Notices:     popNotices(deps.Sessions, sess.ID),
		})
	}
}

func aboutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		c.JSON(http.StatusOK, aboutResponse{
			Title:   "About",
			Body:    "A small online bookshop. Browse the catalog, fill your cart, and check out one book at a time.",
			Notices: popNotices(deps.Sessions, sess.ID),
		})
	}
}

func checkoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		id, ok := bookIDParam(c)
		if !ok {
			redirectNotFound(c, deps.Sessions, sess.ID, "/")
			return
		}

		book, err := deps.CheckoutSvc.Present(c.Request.Context(), id)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			redirectNotFound(c, deps.Sessions, sess.ID, "/")
		case err != nil:
			internalError(c, err)
		default:
			c.JSON(http.StatusOK, bookResponse{
				Book:    book,
				Notices: popNotices(deps.Sessions, sess.ID),
			})
		}
	}
}

func completeCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		id, ok := bookIDParam(c)
		if !ok {
			redirectNotFound(c, deps.Sessions, sess.ID, "/")
			return
		}

		var req completeCheckoutRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and address are required"})
			return
		}

		message, err := deps.CheckoutSvc.Complete(c.Request.Context(), id, checkoutsvc.CompleteInput{
			Name:    req.Name,
			Address: req.Address,
		})
		switch {
		case errors.Is(err, domain.ErrNotFound):
			redirectNotFound(c, deps.Sessions, sess.ID, "/")
		case errors.Is(err, checkoutsvc.ErrEmptyName), errors.Is(err, checkoutsvc.ErrEmptyAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			internalError(c, err)
		default:
			deps.Sessions.PushFlash(sess.ID, session.FlashSuccess, message)
			c.Redirect(http.StatusFound, "/")
		}
	}
}
