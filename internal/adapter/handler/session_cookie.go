package handler

import (
	"net/http"
	"time"

	"vaultx-api/internal/domain"

	"github.com/labstack/echo/v4"
)

// sessionCookieName matches the cookie the web frontend was built around.
const sessionCookieName = "appwrite-session"

// sessionSecret extracts the session credential from the request cookie.
// Empty when the cookie is absent.
func sessionSecret(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie attaches a freshly issued session to the response.
// Expiry is provider-enforced; the cookie mirrors it when known.
func setSessionCookie(c echo.Context, session *domain.Session) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Secret,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
	if !session.Expire.IsZero() {
		cookie.Expires = session.Expire
	}
	c.SetCookie(cookie)
}

// clearSessionCookie removes the session cookie.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
