package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"sweetshop/internal/auth"
	"sweetshop/internal/config"
	apperrors "sweetshop/internal/errors"
	"sweetshop/internal/handler"
	"sweetshop/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMW *auth.Middleware,
	authHandler *handler.AuthHandler,
	sweetHandler *handler.SweetHandler,
	inventoryHandler *handler.InventoryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "Sweet Shop API is running",
		})
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/sweets/search", sweetHandler.Search)
	api.GET("/sweets/:id", sweetHandler.Get)

	// Authenticated routes
	secured := api.Group("/sweets", authMW.Authenticate(), authMW.ResolveUser())
	secured.GET("", sweetHandler.List)
	secured.POST("/:id/purchase", inventoryHandler.Purchase)

	// Admin routes
	admin := secured.Group("", authMW.RequireAdmin())
	admin.POST("", sweetHandler.Create)
	admin.PUT("/:id", sweetHandler.Update)
	admin.DELETE("/:id", sweetHandler.Delete)
	admin.POST("/:id/restock", inventoryHandler.Restock)
	admin.GET("/:id/movements", inventoryHandler.Movements)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler renders every error path as the uniform
// {"error": {"message": ...}} body. Internal causes are logged server-side
// and never echoed to the client.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := apperrors.NewErrorResponse("Server error", "INTERNAL_ERROR")

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch msg := he.Message.(type) {
		case apperrors.ErrorResponse:
			body = msg
		case string:
			body = apperrors.NewErrorResponse(msg, "")
		}
	}

	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		body = apperrors.NewErrorResponse("Server error", "INTERNAL_ERROR")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
