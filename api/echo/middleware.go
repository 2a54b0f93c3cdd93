package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// roleMiddleware restricts an API group to accounts holding one of the
// given roles.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}
