package http

import (
	"net/http"
	"strings"

	"dispatch/internal/auth"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	actorContextKey = "actor"
	bearerPrefix    = "Bearer "
)

// Actor is the authenticated identity attached to a request by BearerAuth.
type Actor struct {
	ID   kernel.UUID
	Role account.Role
}

// TokenValidator checks a bearer token and returns its claims.
// Implemented by the auth package's token service.
type TokenValidator interface {
	Validate(tokenString string) (*auth.Claims, error)
}

// BearerAuth authenticates requests via the Authorization header. A missing
// or invalid token ends the request with 401; valid tokens attach the Actor
// to the request context.
func BearerAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return unauthorized(ctx, "missing bearer token")
			}

			token := strings.TrimPrefix(header, bearerPrefix)
			claims, err := validator.Validate(token)
			if err != nil {
				return unauthorized(ctx, err.Error())
			}

			id, err := claims.UserUUID()
			if err != nil {
				return unauthorized(ctx, "invalid token claims")
			}

			role, err := claims.AccountRole()
			if err != nil {
				return unauthorized(ctx, "invalid token claims")
			}

			ctx.Set(actorContextKey, Actor{ID: id, Role: role})
			return next(ctx)
		}
	}
}

// RequireRole gates a route to actors with the given role. Must run after
// BearerAuth.
func RequireRole(role account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, ok := actorFrom(ctx)
			if !ok {
				return unauthorized(ctx, "missing bearer token")
			}

			if actor.Role != role {
				return ctx.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Message: "access denied: " + role.String() + " role required",
				})
			}

			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) (Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(Actor)
	return actor, ok
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
