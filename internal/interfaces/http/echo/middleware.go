package echo

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks a bearer token and reports the account it belongs to.
type TokenValidator interface {
	Validate(tokenString string) (accountID, accountEmail, role string, err error)
}

// RequireAuth guards a route with bearer-token authentication. The validated
// account is stored on the context for downstream handlers.
func RequireAuth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			const prefix = "Bearer "
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, prefix) {
				return respondUnauthorized(c, "missing bearer token")
			}

			accountID, accountEmail, role, err := tokens.Validate(strings.TrimPrefix(header, prefix))
			if err != nil {
				return respondUnauthorized(c, "invalid or expired token")
			}

			c.Set("account_id", accountID)
			c.Set("account_email", accountEmail)
			c.Set("account_role", role)
			return next(c)
		}
	}
}
