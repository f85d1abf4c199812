package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/service"
	"github.com/ownergate/gatekeeper/internal/infrastructure/db/memory"
)

// Owner claims {id:"1", login:"a", email:"a@a.com", isOwner:true}, URL-safe, unpadded.
const ownerCookie = "eyJpZCI6IjEiLCJsb2dpbiI6ImEiLCJlbWFpbCI6ImFAYS5jb20iLCJpc093bmVyIjp0cnVlfQ"

func runSession(t *testing.T, enricher Enricher, cookie string) (*domain.Claims, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.Claims
	called := false
	h := Session(enricher, Cookies{}, zerolog.Nop())(func(c echo.Context) error {
		called = true
		got = ClaimsFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	return got, rec
}

func TestSession_ValidCookie(t *testing.T) {
	claims, rec := runSession(t, nil, ownerCookie)

	if claims == nil || claims.ID != "1" || !claims.IsOwner {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Fatalf("valid cookie must not be rewritten")
	}
}

func TestSession_NoCookieIsAnonymous(t *testing.T) {
	claims, rec := runSession(t, nil, "")
	if claims != nil {
		t.Fatalf("expected anonymous, got %+v", claims)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_MalformedCookieIsDeleted(t *testing.T) {
	claims, rec := runSession(t, nil, "%%%garbage")

	if claims != nil {
		t.Fatalf("expected anonymous, got %+v", claims)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("malformed cookie must not fail the request, got %d", rec.Code)
	}
	set := rec.Header().Get("Set-Cookie")
	if !strings.Contains(set, SessionCookieName+"=") || !strings.Contains(set, "Max-Age=0") {
		t.Fatalf("expected cookie deletion, got %q", set)
	}
}

func TestSession_IncompleteClaimsAreDeleted(t *testing.T) {
	cookies := map[string]string{
		// {"id":"1","login":"a","isOwner":true}
		"missing email": "eyJpZCI6IjEiLCJsb2dpbiI6ImEiLCJpc093bmVyIjp0cnVlfQ",
		// {"id":"1","login":"a","email":"a@a.com"}
		"missing isOwner": "eyJpZCI6IjEiLCJsb2dpbiI6ImEiLCJlbWFpbCI6ImFAYS5jb20ifQ",
		// {"ID":"1","LOGIN":"a","ISOWNER":true}
		"upper-case keys": "eyJJRCI6IjEiLCJMT0dJTiI6ImEiLCJJU09XTkVSIjp0cnVlfQ",
	}

	for name, cookie := range cookies {
		t.Run(name, func(t *testing.T) {
			claims, rec := runSession(t, nil, cookie)
			if claims != nil {
				t.Fatalf("expected anonymous, got %+v", claims)
			}
			set := rec.Header().Get("Set-Cookie")
			if !strings.Contains(set, SessionCookieName+"=") || !strings.Contains(set, "Max-Age=0") {
				t.Fatalf("expected cookie deletion, got %q", set)
			}
		})
	}
}

func TestSession_EnrichmentOverridesAdmin(t *testing.T) {
	lookup := memory.NewAdminLookup()
	lookup.Set("1", true)
	enricher := service.NewSessionEnricher(lookup, zerolog.Nop())

	claims, _ := runSession(t, enricher, ownerCookie)
	if !claims.Admin() {
		t.Fatalf("expected admin flag from store")
	}
}

func TestSession_EnrichmentStoreDown(t *testing.T) {
	lookup := memory.NewAdminLookup()
	lookup.SetError(errors.New("refused"))
	enricher := service.NewSessionEnricher(lookup, zerolog.Nop())

	claims, rec := runSession(t, enricher, ownerCookie)
	if claims == nil || !claims.IsOwner {
		t.Fatalf("expected decoded claims to survive, got %+v", claims)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request to proceed, got %d", rec.Code)
	}
}

type countingEnricher struct{ calls int }

func (e *countingEnricher) Enrich(_ context.Context, c *domain.Claims) (*domain.Claims, service.AdminSource) {
	e.calls++
	return c, service.AdminFromCookie
}

func TestSession_AnonymousSkipsEnrichment(t *testing.T) {
	e := &countingEnricher{}
	runSession(t, e, "")
	runSession(t, e, "bm90LWpzb24")
	if e.calls != 0 {
		t.Fatalf("enricher should only run for decoded sessions, ran %d times", e.calls)
	}
}
