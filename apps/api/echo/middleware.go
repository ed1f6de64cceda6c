package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"edupro/core/user"
)

// roleGateMiddleware gates a route on the access decision for the live user.
// A stale token whose user no longer exists degrades to unauthenticated.
func roleGateMiddleware(svc user.Service, roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			var ctxUsr *user.User
			if usr, err := getContextUser(ctx, svc); err == nil {
				ctxUsr = &usr
			}

			switch user.Authorize(ctxUsr, roles...) {
			case user.DecisionGranted:
				return next(ctx)

			case user.DecisionWrongRole:
				return echo.NewHTTPError(http.StatusForbidden, echo.Map{
					"error":    "permission denied",
					"redirect": user.LandingPath(ctxUsr),
				})

			case user.DecisionPendingApproval:
				return echo.NewHTTPError(http.StatusForbidden, echo.Map{
					"error": fmt.Sprintf("account %q is awaiting approval; only logout is available", ctxUsr.Username),
				})

			default: // unauthenticated
				return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
					"error":    "user not authenticated",
					"redirect": user.LoginPath,
				})
			}
		}
	}
}
