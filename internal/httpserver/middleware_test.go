package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"bookshop/internal/metrics"
	"bookshop/internal/session"
)

func TestSessionMiddleware_MintsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(time.Hour)
	router := gin.New()
	router.Use(sessionMiddleware(store, time.Hour, false))
	router.GET("/t", func(c *gin.Context) {
		if currentSession(c).ID == "" {
			t.Fatalf("expected live session in context")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	ck := sessionCookie(t, rec)
	if ck.Value == "" {
		t.Fatalf("expected session id in cookie")
	}
	if !ck.HttpOnly {
		t.Fatalf("expected HttpOnly cookie")
	}
	if ck.Path != "/" {
		t.Fatalf("expected path /, got %q", ck.Path)
	}
	if ck.MaxAge != 3600 {
		t.Fatalf("expected max-age 3600, got %d", ck.MaxAge)
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", ck.SameSite)
	}
	if _, ok := store.Get(ck.Value); !ok {
		t.Fatalf("cookie does not map to a stored session")
	}
}

func TestSessionMiddleware_ReusesLiveSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(time.Hour)
	var seen []string
	router := gin.New()
	router.Use(sessionMiddleware(store, time.Hour, false))
	router.GET("/t", func(c *gin.Context) {
		seen = append(seen, currentSession(c).ID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	cookie := sessionCookie(t, rec)

	req2 := httptest.NewRequest(http.MethodGet, "/t", nil)
	req2.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)

	if len(rec2.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie on a live session")
	}
	if len(seen) != 2 || seen[0] != seen[1] {
		t.Fatalf("expected the same session on both requests, got %v", seen)
	}
}

func TestSessionMiddleware_ExpiredSessionReplaced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(-time.Minute)
	var seen []string
	router := gin.New()
	router.Use(sessionMiddleware(store, time.Hour, false))
	router.GET("/t", func(c *gin.Context) {
		seen = append(seen, currentSession(c).ID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	req2 := httptest.NewRequest(http.MethodGet, "/t", nil)
	req2.AddCookie(sessionCookie(t, rec))
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)

	if len(seen) != 2 || seen[0] == seen[1] {
		t.Fatalf("expected a replacement session, got %v", seen)
	}
	if len(rec2.Result().Cookies()) == 0 {
		t.Fatalf("expected a fresh cookie for the replacement session")
	}
}

func TestRequireAuth_PassesBoundSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(time.Hour)
	sess := store.Create()
	store.SetUser(sess.ID, 7)

	router := gin.New()
	router.Use(sessionMiddleware(store, time.Hour, false))
	router.GET("/t", requireAuth(store), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	deps, _ := testDeps()
	deps.Metrics = metrics.NewCollector(reg)
	deps.MetricsHandler = metrics.Handler(reg)
	router := buildRouter(logDiscard(), nil, deps)

	doRequest(router, http.MethodGet, "/add_to_cart/123", "", nil)
	doRequest(router, http.MethodGet, "/add_to_cart/456", "", nil)

	rec := doRequest(router, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	// Both hits land on one series keyed by the route template.
	if !strings.Contains(body, `path="/add_to_cart/:book_id"`) {
		t.Fatalf("expected route-template label, got %s", body)
	}
	if strings.Contains(body, `path="/add_to_cart/123"`) {
		t.Fatalf("raw URLs must not become label values: %s", body)
	}
}
