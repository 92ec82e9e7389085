package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"sweetshop/internal/auth"
	"sweetshop/internal/errors"
	"sweetshop/internal/model"
	"sweetshop/internal/service"
)

// InventoryHandler handles stock mutation endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// QuantityRequest carries the unit count for purchase and restock.
type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// StockResponse wraps the updated sweet and a confirmation message.
type StockResponse struct {
	Sweet   *model.Sweet `json:"sweet"`
	Message string       `json:"message"`
}

// MovementListResponse wraps the audit trail of a sweet.
type MovementListResponse struct {
	Movements []model.StockMovement `json:"movements"`
}

// Purchase godoc
// @Summary Purchase a sweet
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet ID"
// @Param request body QuantityRequest true "Units to purchase"
// @Success 200 {object} StockResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c echo.Context) error {
	id, err := parseSweetID(c)
	if err != nil {
		return err
	}

	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized,
			errors.NewErrorResponse("Not authorized", "UNAUTHENTICATED"))
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			errors.NewErrorResponse("invalid request body", "INVALID_BODY"))
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			errors.NewErrorResponse("Quantity must be at least 1", "VALIDATION_ERROR"))
	}

	sweet, err := h.inventoryService.Purchase(c.Request().Context(), id, req.Quantity, user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StockResponse{
		Sweet:   sweet,
		Message: fmt.Sprintf("Sweet purchased successfully. %d items purchased", req.Quantity),
	})
}

// Restock godoc
// @Summary Restock a sweet
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet ID"
// @Param request body QuantityRequest true "Units to add"
// @Success 200 {object} StockResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets/{id}/restock [post]
func (h *InventoryHandler) Restock(c echo.Context) error {
	id, err := parseSweetID(c)
	if err != nil {
		return err
	}

	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized,
			errors.NewErrorResponse("Not authorized", "UNAUTHENTICATED"))
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			errors.NewErrorResponse("invalid request body", "INVALID_BODY"))
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			errors.NewErrorResponse("Quantity must be at least 1", "VALIDATION_ERROR"))
	}

	sweet, err := h.inventoryService.Restock(c.Request().Context(), id, req.Quantity, user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StockResponse{
		Sweet:   sweet,
		Message: fmt.Sprintf("Sweet restocked successfully. %d items added", req.Quantity),
	})
}

// Movements godoc
// @Summary List stock movements for a sweet
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet ID"
// @Success 200 {object} MovementListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets/{id}/movements [get]
func (h *InventoryHandler) Movements(c echo.Context) error {
	id, err := parseSweetID(c)
	if err != nil {
		return err
	}

	movements, err := h.inventoryService.Movements(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MovementListResponse{Movements: movements})
}
