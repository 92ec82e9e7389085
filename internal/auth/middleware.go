package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "sweetshop/internal/errors"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

const (
	// ContextClaimsKey is where the authenticate stage stores the verified claims.
	ContextClaimsKey = "token"
	// ContextUserKey is where the resolve stage stores the authenticated user.
	ContextUserKey = "currentUser"
)

// Middleware gates protected routes: authenticate (bearer token -> claims),
// resolve (claims -> stored user), authorize (role check).
type Middleware struct {
	jwtService *JWTService
	users      repository.UserRepository
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(jwtService *JWTService, users repository.UserRepository) *Middleware {
	return &Middleware{jwtService: jwtService, users: users}
}

// Authenticate extracts and verifies the bearer token, storing claims in the
// request context. Missing or non-Bearer headers, malformed tokens, and
// expired tokens all fail with 401, each with its own message.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextClaimsKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return m.jwtService.VerifyToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				return unauthenticated(apperrors.ErrTokenExpired.Error(), "TOKEN_EXPIRED")
			}
			if errors.Is(err, apperrors.ErrTokenInvalid) {
				return unauthenticated(apperrors.ErrTokenInvalid.Error(), "TOKEN_INVALID")
			}
			return unauthenticated("No token provided, authorization denied", "TOKEN_MISSING")
		},
	})
}

// ResolveUser loads the user encoded in the verified claims and attaches it
// to the request context. A token whose user no longer exists is rejected.
func (m *Middleware) ResolveUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextClaimsKey).(*Claims)
			if !ok {
				return unauthenticated("Not authorized", "UNAUTHENTICATED")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return unauthenticated(apperrors.ErrTokenInvalid.Error(), "TOKEN_INVALID")
			}

			user, err := m.users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return unauthenticated(apperrors.ErrTokenInvalid.Error(), "TOKEN_INVALID")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose resolved user is not an admin.
// If ResolveUser has not populated the context this fails with 401.
func (m *Middleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*model.User)
			if !ok {
				return unauthenticated("Not authorized", "UNAUTHENTICATED")
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden,
					apperrors.NewErrorResponse("Access denied. Admin privileges required", "FORBIDDEN"))
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user attached by ResolveUser.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}

func unauthenticated(message, code string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.NewErrorResponse(message, code))
}
