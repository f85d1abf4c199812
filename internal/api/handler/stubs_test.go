package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

type stubBootstrap struct {
	saveFn       func(ctx context.Context, cfg domain.OAuthConfig) error
	loadFn       func(ctx context.Context) (*domain.OAuthConfig, error)
	configuredFn func(ctx context.Context) (bool, error)
}

func (s *stubBootstrap) SaveOAuthConfig(ctx context.Context, cfg domain.OAuthConfig) error {
	return s.saveFn(ctx, cfg)
}

func (s *stubBootstrap) LoadOAuthConfig(ctx context.Context) (*domain.OAuthConfig, error) {
	return s.loadFn(ctx)
}

func (s *stubBootstrap) IsConfigured(ctx context.Context) (bool, error) {
	if s.configuredFn == nil {
		return true, nil
	}
	return s.configuredFn(ctx)
}

type stubLogin struct {
	loginFn func(ctx context.Context, identity domain.Identity) (string, *domain.Claims, error)
}

func (s *stubLogin) Login(ctx context.Context, identity domain.Identity) (string, *domain.Claims, error) {
	return s.loginFn(ctx, identity)
}

type stubState struct {
	issueFn  func() (string, error)
	verifyFn func(state string) error
}

func (s *stubState) Issue() (string, error) { return s.issueFn() }

func (s *stubState) Verify(state string) error { return s.verifyFn(state) }

type stubExchanger struct {
	exchangeFn func(ctx context.Context, cfg domain.OAuthConfig, code string) (*domain.Identity, error)
}

func (s *stubExchanger) Exchange(ctx context.Context, cfg domain.OAuthConfig, code string) (*domain.Identity, error) {
	return s.exchangeFn(ctx, cfg, code)
}

type stubSetup struct {
	isOpenFn   func(ctx context.Context) (bool, error)
	completeFn func(ctx context.Context, owner domain.Identity) error
	ownerFn    func(ctx context.Context) (string, string, bool, error)
}

func (s *stubSetup) IsOpen(ctx context.Context) (bool, error) { return s.isOpenFn(ctx) }

func (s *stubSetup) CompleteSetup(ctx context.Context, owner domain.Identity) error {
	return s.completeFn(ctx, owner)
}

func (s *stubSetup) Owner(ctx context.Context) (string, string, bool, error) {
	return s.ownerFn(ctx)
}

type stubReset struct {
	setFn      func(ctx context.Context, by *domain.Claims, disabled bool) error
	disabledFn func(ctx context.Context) (bool, error)
	performFn  func(ctx context.Context, by *domain.Claims) (*ports.ResetResult, error)
}

func (s *stubReset) SetDisabled(ctx context.Context, by *domain.Claims, disabled bool) error {
	return s.setFn(ctx, by, disabled)
}

func (s *stubReset) IsDisabled(ctx context.Context) (bool, error) { return s.disabledFn(ctx) }

func (s *stubReset) PerformReset(ctx context.Context, by *domain.Claims) (*ports.ResetResult, error) {
	return s.performFn(ctx, by)
}

var (
	ownerClaims  = &domain.Claims{ID: "1", Login: "octocat", Email: "o@example.com", IsOwner: true}
	memberClaims = &domain.Claims{ID: "2", Login: "hubot", Email: "h@example.com"}
)

// newContext builds an echo context with the validator installed and, when
// claims is non-nil, a signed-in session.
func newContext(method, target, body string, claims *domain.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		middleware.WithClaims(c, claims)
	}
	return c, rec
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
