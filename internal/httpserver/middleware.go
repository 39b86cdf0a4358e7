package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshop/internal/metrics"
	"bookshop/internal/session"
)

const (
	sessionCookieName = "session_id"
	sessionContextKey = "session"
)

// sessionMiddleware resolves the session_id cookie, minting a fresh session
// (and cookie) when the cookie is absent or no longer maps to a live session.
// Handlers downstream always see a live session in the gin context.
func sessionMiddleware(store *session.Store, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess session.Session
		found := false
		if cookie, err := c.Request.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sess, found = store.Get(cookie.Value)
		}
		if !found {
			sess = store.Create()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// requireAuth redirects anonymous sessions to the login page.
func requireAuth(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess.UserID == 0 {
			store.PushFlash(sess.ID, session.FlashDanger, "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func metricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		// Route template, not the raw URL, to keep label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		collector.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// currentSession returns the session placed in the context by
// sessionMiddleware. The zero Session means the middleware did not run.
func currentSession(c *gin.Context) session.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return session.Session{}
}
