package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sweetshop/internal/auth"
	"sweetshop/internal/errors"
	"sweetshop/internal/model"
)

// MockInventoryService is a mock implementation of InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Purchase(ctx context.Context, sweetID uuid.UUID, quantity int, userID uuid.UUID) (*model.Sweet, error) {
	args := m.Called(ctx, sweetID, quantity, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sweet), args.Error(1)
}

func (m *MockInventoryService) Restock(ctx context.Context, sweetID uuid.UUID, quantity int, userID uuid.UUID) (*model.Sweet, error) {
	args := m.Called(ctx, sweetID, quantity, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sweet), args.Error(1)
}

func (m *MockInventoryService) Movements(ctx context.Context, sweetID uuid.UUID) ([]model.StockMovement, error) {
	args := m.Called(ctx, sweetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StockMovement), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newStockContext(t *testing.T, body, sweetID string, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sweetID)
	if user != nil {
		c.Set(auth.ContextUserKey, user)
	}
	return c, rec
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok, "expected *echo.HTTPError, got %T", err)
	assert.Equal(t, code, he.Code)
	resp, ok := he.Message.(errors.ErrorResponse)
	assert.True(t, ok, "expected errors.ErrorResponse message, got %T", he.Message)
	assert.Equal(t, message, resp.Error.Message)
}

func TestInventoryHandler_Purchase(t *testing.T) {
	sweetID := uuid.New()
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}

	t.Run("success returns updated sweet and message", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("Purchase", mock.Anything, sweetID, 3, user.ID).
			Return(&model.Sweet{ID: sweetID, Quantity: 47}, nil)

		c, rec := newStockContext(t, `{"quantity":3}`, sweetID.String(), user)
		err := NewInventoryHandler(svc).Purchase(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Sweet purchased successfully. 3 items purchased")
		assert.Contains(t, rec.Body.String(), `"quantity":47`)
		svc.AssertExpectations(t)
	})

	t.Run("malformed id maps to 404", func(t *testing.T) {
		c, _ := newStockContext(t, `{"quantity":1}`, "not-a-uuid", user)
		err := NewInventoryHandler(new(MockInventoryService)).Purchase(c)

		assertHTTPError(t, err, http.StatusNotFound, "Sweet not found")
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		c, _ := newStockContext(t, `{"quantity":0}`, sweetID.String(), user)
		err := NewInventoryHandler(new(MockInventoryService)).Purchase(c)

		assertHTTPError(t, err, http.StatusBadRequest, "Quantity must be at least 1")
	})

	t.Run("insufficient stock surfaces available amount", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("Purchase", mock.Anything, sweetID, 10, user.ID).
			Return(nil, &errors.InsufficientStockError{Available: 5})

		c, _ := newStockContext(t, `{"quantity":10}`, sweetID.String(), user)
		err := NewInventoryHandler(svc).Purchase(c)

		assertHTTPError(t, err, http.StatusBadRequest, "Insufficient stock. Only 5 available")
	})

	t.Run("out of stock", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("Purchase", mock.Anything, sweetID, 1, user.ID).
			Return(nil, errors.ErrOutOfStock)

		c, _ := newStockContext(t, `{"quantity":1}`, sweetID.String(), user)
		err := NewInventoryHandler(svc).Purchase(c)

		assertHTTPError(t, err, http.StatusBadRequest, "Sweet is out of stock")
	})

	t.Run("missing user context", func(t *testing.T) {
		c, _ := newStockContext(t, `{"quantity":1}`, sweetID.String(), nil)
		err := NewInventoryHandler(new(MockInventoryService)).Purchase(c)

		assertHTTPError(t, err, http.StatusUnauthorized, "Not authorized")
	})
}

func TestInventoryHandler_Restock(t *testing.T) {
	sweetID := uuid.New()
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("Restock", mock.Anything, sweetID, 25, admin.ID).
			Return(&model.Sweet{ID: sweetID, Quantity: 25}, nil)

		c, rec := newStockContext(t, `{"quantity":25}`, sweetID.String(), admin)
		err := NewInventoryHandler(svc).Restock(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Sweet restocked successfully. 25 items added")
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("Restock", mock.Anything, sweetID, 5, admin.ID).
			Return(nil, errors.ErrSweetNotFound)

		c, _ := newStockContext(t, `{"quantity":5}`, sweetID.String(), admin)
		err := NewInventoryHandler(svc).Restock(c)

		assertHTTPError(t, err, http.StatusNotFound, "Sweet not found")
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		c, _ := newStockContext(t, `{"quantity":-5}`, sweetID.String(), admin)
		err := NewInventoryHandler(new(MockInventoryService)).Restock(c)

		assertHTTPError(t, err, http.StatusBadRequest, "Quantity must be at least 1")
	})
}
