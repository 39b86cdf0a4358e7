package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshop/internal/domain"
	"bookshop/internal/session"
)

func cartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		books, total, err := deps.CartSvc.Resolve(c.Request.Context(), sess.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// Session evaporated under us; render an empty cart.
			c.JSON(http.StatusOK, cartResponse{Books: []domain.Book{}, Notices: []session.Flash{}})
		case err != nil:
			internalError(c, err)
		default:
			if books == nil {
				books = []domain.Book{}
			}
			c.JSON(http.StatusOK, cartResponse{
				Books:      books,
				TotalPrice: total,
				Notices:    popNotices(deps.Sessions, sess.ID),
			})
		}
	}
}

// addToCartHandler appends the id without checking the catalog; stale ids are
// skipped when the cart is resolved.
func addToCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		id, ok := bookIDParam(c)
		if !ok {
			redirectNotFound(c, deps.Sessions, sess.ID, "/")
			return
		}
		if err := deps.CartSvc.Add(sess.ID, id); err == nil {
			deps.Sessions.PushFlash(sess.ID, session.FlashSuccess, "Book added to your cart.")
		}
		c.Redirect(http.StatusFound, "/")
	}
}

func removeFromCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		id, ok := bookIDParam(c)
		if !ok {
			redirectNotFound(c, deps.Sessions, sess.ID, "/cart")
			return
		}
		if err := deps.CartSvc.Remove(sess.ID, id); err == nil {
			deps.Sessions.PushFlash(sess.ID, session.FlashSuccess, "Book removed from your cart.")
		}
		c.Redirect(http.StatusFound, "/cart")
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if err := deps.CartSvc.Clear(sess.ID); err == nil {
			deps.Sessions.PushFlash(sess.ID, session.FlashSuccess, "Your cart has been cleared.")
		}
		c.Redirect(http.StatusFound, "/cart")
	}
}
