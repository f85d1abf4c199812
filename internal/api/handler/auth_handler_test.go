package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/domain"
)

var githubConfig = &domain.OAuthConfig{Provider: domain.ProviderGitHub, ClientID: "cid", ClientSecret: "shh"}

func newAuthHandler(exchanger *stubExchanger, login *stubLogin) *AuthHandler {
	deps := AuthDeps{
		Bootstrap: &stubBootstrap{
			loadFn: func(ctx context.Context) (*domain.OAuthConfig, error) { return githubConfig, nil },
		},
		Login: login,
		State: &stubState{
			issueFn:  func() (string, error) { return "state-1", nil },
			verifyFn: func(state string) error { return nil },
		},
		Cookies:   middleware.Cookies{Secure: true},
		PublicURL: "https://gate.example.com/",
	}
	if exchanger != nil {
		deps.Exchanger = exchanger
	}
	return NewAuthHandler(deps)
}

func callbackRequest(h *AuthHandler, query string, stateCookie string) (*http.Response, error) {
	c, rec := newContext(http.MethodGet, "/auth/callback?"+query, "", nil)
	if stateCookie != "" {
		c.Request().AddCookie(&http.Cookie{Name: stateCookieName, Value: stateCookie})
	}
	err := h.Callback(c)
	return rec.Result(), err
}

func TestAuthHandler_LoginPage_ExplainsReason(t *testing.T) {
	h := newAuthHandler(nil, nil)
	c, rec := newContext(http.MethodGet, "/login?reason=forbidden", "", memberClaims)

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp loginPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Reason != "forbidden" || resp.Message != middleware.ReasonMessage(domain.ReasonForbidden) {
		t.Fatalf("unexpected reason payload: %+v", resp)
	}
	if !resp.Authenticated || resp.User == nil || resp.User.Login != "hubot" || !resp.Configured {
		t.Fatalf("expected signed-in member on a configured install: %+v", resp)
	}
}

func TestAuthHandler_LoginPage_UnknownReasonHasNoMessage(t *testing.T) {
	h := newAuthHandler(nil, nil)
	c, rec := newContext(http.MethodGet, "/login?reason=%3Cscript%3E", "", nil)

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp loginPageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "" || resp.Authenticated {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Start_RedirectsToProvider(t *testing.T) {
	h := newAuthHandler(nil, nil)
	c, rec := newContext(http.MethodGet, "/auth/login", "", nil)

	if err := h.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad location: %v", err)
	}
	q := loc.Query()
	if loc.Host != "github.com" || q.Get("state") != "state-1" || q.Get("client_id") != "cid" {
		t.Fatalf("unexpected location: %s", loc)
	}
	if q.Get("redirect_uri") != "https://gate.example.com/auth/callback" {
		t.Fatalf("unexpected redirect_uri: %q", q.Get("redirect_uri"))
	}

	ck := findCookie(rec, stateCookieName)
	if ck == nil || ck.Value != "state-1" || !ck.HttpOnly || !ck.Secure || ck.Path != callbackPath {
		t.Fatalf("state cookie not bound: %+v", ck)
	}
}

func TestAuthHandler_Start_NotConfigured(t *testing.T) {
	h := NewAuthHandler(AuthDeps{
		Bootstrap: &stubBootstrap{
			loadFn: func(ctx context.Context) (*domain.OAuthConfig, error) { return nil, domain.ErrNotConfigured },
		},
	})
	c, _ := newContext(http.MethodGet, "/auth/login", "", nil)

	if err := h.Start(c); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAuthHandler_Callback_IssuesSession(t *testing.T) {
	exchanger := &stubExchanger{
		exchangeFn: func(ctx context.Context, cfg domain.OAuthConfig, code string) (*domain.Identity, error) {
			if code != "abc" || cfg.ClientID != "cid" {
				t.Fatalf("unexpected exchange args: %s %+v", code, cfg)
			}
			return &domain.Identity{ID: "1", Login: "octocat"}, nil
		},
	}
	login := &stubLogin{
		loginFn: func(ctx context.Context, identity domain.Identity) (string, *domain.Claims, error) {
			return "encoded", ownerClaims, nil
		},
	}
	h := newAuthHandler(exchanger, login)

	res, err := callbackRequest(h, "code=abc&state=state-1", "state-1")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.StatusCode != http.StatusFound || res.Header.Get("Location") != domain.PathAdmin {
		t.Fatalf("expected redirect to /admin, got %d %s", res.StatusCode, res.Header.Get("Location"))
	}

	var session, state *http.Cookie
	for _, ck := range res.Cookies() {
		switch ck.Name {
		case middleware.SessionCookieName:
			session = ck
		case stateCookieName:
			state = ck
		}
	}
	if session == nil || session.Value != "encoded" {
		t.Fatalf("session cookie not set: %+v", session)
	}
	if state == nil || state.MaxAge >= 0 {
		t.Fatalf("state cookie should be cleared: %+v", state)
	}
}

func TestAuthHandler_Callback_MemberLandsOnRoot(t *testing.T) {
	exchanger := &stubExchanger{
		exchangeFn: func(ctx context.Context, cfg domain.OAuthConfig, code string) (*domain.Identity, error) {
			return &domain.Identity{ID: "2", Login: "hubot"}, nil
		},
	}
	login := &stubLogin{
		loginFn: func(ctx context.Context, identity domain.Identity) (string, *domain.Claims, error) {
			return "encoded", memberClaims, nil
		},
	}
	h := newAuthHandler(exchanger, login)

	res, err := callbackRequest(h, "code=abc&state=state-1", "state-1")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.Header.Get("Location") != domain.PathLanding {
		t.Fatalf("expected redirect to /, got %s", res.Header.Get("Location"))
	}
}

func TestAuthHandler_Callback_StateMismatch(t *testing.T) {
	h := newAuthHandler(&stubExchanger{}, &stubLogin{})

	tests := []struct {
		name   string
		query  string
		cookie string
	}{
		{name: "no cookie", query: "code=abc&state=state-1"},
		{name: "different cookie", query: "code=abc&state=state-1", cookie: "state-2"},
		{name: "no state", query: "code=abc", cookie: "state-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := callbackRequest(h, tt.query, tt.cookie)
			if !errors.Is(err, domain.ErrInvalidState) {
				t.Fatalf("expected ErrInvalidState, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Callback_ExpiredState(t *testing.T) {
	h := newAuthHandler(&stubExchanger{}, &stubLogin{})
	h.deps.State = &stubState{verifyFn: func(string) error { return domain.ErrInvalidState }}

	_, err := callbackRequest(h, "code=abc&state=state-1", "state-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestAuthHandler_Callback_NoExchanger(t *testing.T) {
	h := newAuthHandler(nil, &stubLogin{})

	_, err := callbackRequest(h, "code=abc&state=state-1", "state-1")
	if httpStatus(err) != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %v", err)
	}
}

func TestAuthHandler_Callback_ProviderDenied(t *testing.T) {
	h := newAuthHandler(nil, &stubLogin{})

	res, err := callbackRequest(h, "error=access_denied", "")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.Header.Get("Location") != "/login?reason=unauthorized" {
		t.Fatalf("unexpected location: %s", res.Header.Get("Location"))
	}
}

func TestAuthHandler_Callback_ExchangeFailure(t *testing.T) {
	exchanger := &stubExchanger{
		exchangeFn: func(ctx context.Context, cfg domain.OAuthConfig, code string) (*domain.Identity, error) {
			return nil, errors.New("dial tcp: timeout")
		},
	}
	h := newAuthHandler(exchanger, &stubLogin{})

	_, err := callbackRequest(h, "code=abc&state=state-1", "state-1")
	if httpStatus(err) != http.StatusBadGateway {
		t.Fatalf("expected 502, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsSession(t *testing.T) {
	h := newAuthHandler(nil, nil)
	c, rec := newContext(http.MethodPost, "/auth/logout", "", ownerClaims)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	ck := findCookie(rec, middleware.SessionCookieName)
	if ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("session cookie should be cleared: %+v", ck)
	}
}
