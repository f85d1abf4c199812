package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the browser cookie carrying the encoded claims.
const SessionCookieName = "session"

// Cookies writes and clears the session cookie with consistent attributes.
// No Max-Age is set: expiry policy belongs to the login collaborator.
type Cookies struct {
	Secure bool
}

// Set stores value as the session cookie.
func (k Cookies) Set(c echo.Context, value string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear instructs the client to delete the session cookie.
func (k Cookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
