package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, mw echo.MiddlewareFunc, ip string) (int, http.Header) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
	req.Header.Set("X-Real-Ip", ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	if err != nil {
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		return httpErr.Code, rec.Header()
	}
	return rec.Code, rec.Header()
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	mw := rl.Middleware()

	for i := 0; i < 3; i++ {
		code, _ := doRequest(t, mw, "10.0.0.1")
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(0.01, 2)
	mw := rl.Middleware()

	doRequest(t, mw, "10.0.0.1")
	doRequest(t, mw, "10.0.0.1")
	code, header := doRequest(t, mw, "10.0.0.1")

	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.NotEmpty(t, header.Get("Retry-After"))
}

func TestRateLimiter_IsolatesClients(t *testing.T) {
	rl := NewRateLimiter(0.01, 1)
	mw := rl.Middleware()

	doRequest(t, mw, "10.0.0.1")
	code, _ := doRequest(t, mw, "10.0.0.2")

	assert.Equal(t, http.StatusOK, code)
}
