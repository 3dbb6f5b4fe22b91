package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core/access"
)

// routeMiddleware only lets through roles allowed on route, a literal key of the
// console route table such as "/students/[id]/edit".
func routeMiddleware(route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			role, err := getContextRole(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context role")
			}
			if access.CanAccessRoute(role, route) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
