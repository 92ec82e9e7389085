package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"sweetshop/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestServer(users *MockUserRepository, jwtService *JWTService) *echo.Echo {
	e := echo.New()
	mw := NewMiddleware(jwtService, users)

	protected := e.Group("/protected", mw.Authenticate(), mw.ResolveUser())
	protected.GET("", func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "user missing from context")
		}
		return c.JSON(http.StatusOK, user)
	})

	admin := protected.Group("/admin", mw.RequireAdmin())
	admin.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}

func doRequest(e *echo.Echo, authHeader string, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_Authenticate(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()
	user := &model.User{ID: userID, Email: "user@sweetshop.com", Role: model.RoleUser}

	validToken, err := jwtService.GenerateToken(userID)
	assert.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		e := newTestServer(new(MockUserRepository), jwtService)
		rec := doRequest(e, "", "/protected")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "No token provided, authorization denied")
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		e := newTestServer(new(MockUserRepository), jwtService)
		rec := doRequest(e, "Basic dXNlcjpwYXNz", "/protected")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "No token provided, authorization denied")
	})

	t.Run("malformed token", func(t *testing.T) {
		e := newTestServer(new(MockUserRepository), jwtService)
		rec := doRequest(e, "Bearer garbage", "/protected")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token is not valid")
	})

	t.Run("expired token gets its own message", func(t *testing.T) {
		expiredToken, err := NewJWTService("test-secret", -time.Minute).GenerateToken(userID)
		assert.NoError(t, err)

		e := newTestServer(new(MockUserRepository), jwtService)
		rec := doRequest(e, "Bearer "+expiredToken, "/protected")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token has expired")
	})

	t.Run("valid token resolves user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(user, nil)

		e := newTestServer(users, jwtService)
		rec := doRequest(e, "Bearer "+validToken, "/protected")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user@sweetshop.com")
		// The projection must never leak the hash field.
		assert.NotContains(t, rec.Body.String(), "passwordHash")
	})

	t.Run("token for deleted user rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		e := newTestServer(users, jwtService)
		rec := doRequest(e, "Bearer "+validToken, "/protected")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token is not valid")
	})
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)

	t.Run("non-admin forbidden", func(t *testing.T) {
		userID := uuid.New()
		token, _ := jwtService.GenerateToken(userID)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, Role: model.RoleUser}, nil)

		e := newTestServer(users, jwtService)
		rec := doRequest(e, "Bearer "+token, "/protected/admin")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Access denied. Admin privileges required")
	})

	t.Run("admin allowed", func(t *testing.T) {
		adminID := uuid.New()
		token, _ := jwtService.GenerateToken(adminID)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, adminID).
			Return(&model.User{ID: adminID, Role: model.RoleAdmin}, nil)

		e := newTestServer(users, jwtService)
		rec := doRequest(e, "Bearer "+token, "/protected/admin")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no token unauthorized, not forbidden", func(t *testing.T) {
		e := newTestServer(new(MockUserRepository), jwtService)
		rec := doRequest(e, "", "/protected/admin")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
