package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshop/internal/domain"
	usersvc "bookshop/internal/service/user"
	"bookshop/internal/session"
)

type credentialsRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func loginPageHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		c.JSON(http.StatusOK, pageResponse{Notices: popNotices(deps.Sessions, sess.ID)})
	}
}

func loginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		var req credentialsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		u, err := deps.UserSvc.Authenticate(c.Request.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, usersvc.ErrInvalidCredentials):
			deps.Sessions.PushFlash(sess.ID, session.FlashDanger, "Invalid username or password.")
			c.Redirect(http.StatusFound, "/login")
		case err != nil:
			internalError(c, err)
		default:
			deps.Sessions.SetUser(sess.ID, u.ID)
			deps.Sessions.PushFlash(sess.ID, session.FlashSuccess, "You have logged in successfully!")
			c.Redirect(http.StatusFound, "/")
		}
	}
}

func signupPageHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		c.JSON(http.StatusOK, pageResponse{Notices: popNotices(deps.Sessions, sess.ID)})
	}
}

func signupHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		var req credentialsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		u, err := deps.UserSvc.Register(c.Request.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, usersvc.ErrDuplicateUsername):
			deps.Sessions.PushFlash(sess.ID, session.FlashDanger, "A user with that name already exists.")
			c.Redirect(http.StatusFound, "/signup")
		case errors.Is(err, usersvc.ErrEmptyUsername), errors.Is(err, usersvc.ErrEmptyPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			internalError(c, err)
		default:
			// The original logs the new user straight in.
			deps.Sessions.SetUser(sess.ID, u.ID)
			deps.Sessions.PushFlash(sess.ID, session.FlashSuccess, "Registration successful. You are now logged in.")
			c.Redirect(http.StatusFound, "/")
		}
	}
}

func logoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		// The cart stays with the session across logout.
		deps.Sessions.ClearUser(sess.ID)
		deps.Sessions.PushFlash(sess.ID, session.FlashSuccess, "You have logged out.")
		c.Redirect(http.StatusFound, "/")
	}
}

func accountHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		u, err := deps.UserSvc.Get(c.Request.Context(), sess.UserID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// The bound user vanished; drop the binding and re-auth.
			deps.Sessions.ClearUser(sess.ID)
			deps.Sessions.PushFlash(sess.ID, session.FlashDanger, "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
		case err != nil:
			internalError(c, err)
		default:
			c.JSON(http.StatusOK, accountResponse{
				User:    accountUser{ID: u.ID, Username: u.Username},
				Notices: popNotices(deps.Sessions, sess.ID),
			})
		}
	}
}
