package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const usernameKey = "auth.username"

// Middleware returns an echo middleware that requires a valid bearer token
// and stores the authenticated username in the request context. A raw token
// without the "Bearer " prefix is tolerated.
func Middleware(a *Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}
			raw := strings.TrimPrefix(header, "Bearer ")
			username, err := a.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			c.Set(usernameKey, username)
			return next(c)
		}
	}
}

// Username returns the authenticated username from the request context, or
// the empty string if the request did not pass the middleware.
func Username(c echo.Context) string {
	username, _ := c.Get(usernameKey).(string)
	return username
}
