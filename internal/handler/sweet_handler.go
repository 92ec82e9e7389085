package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"sweetshop/internal/errors"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
	"sweetshop/internal/service"
)

// SweetHandler handles catalog endpoints.
type SweetHandler struct {
	sweetService service.SweetService
}

// NewSweetHandler creates a new catalog handler.
func NewSweetHandler(sweetService service.SweetService) *SweetHandler {
	return &SweetHandler{sweetService: sweetService}
}

// CreateSweetRequest represents a catalog creation request.
type CreateSweetRequest struct {
	Name        string           `json:"name" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
}

// UpdateSweetRequest represents a partial update. Absent fields stay nil and
// leave the stored value untouched.
type UpdateSweetRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl"`
}

// SweetResponse wraps a single sweet.
type SweetResponse struct {
	Sweet *model.Sweet `json:"sweet"`
}

// SweetListResponse wraps a list of sweets.
type SweetListResponse struct {
	Sweets []model.Sweet `json:"sweets"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// parseSweetID maps malformed ids to the same 404 a missing record gets:
// both mean "no such resource" to the caller.
func parseSweetID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound,
			errors.NewErrorResponse(errors.ErrSweetNotFound.Error(), "SWEET_NOT_FOUND"))
	}
	return id, nil
}

// List godoc
// @Summary List all sweets
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SweetListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.sweetService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SweetListResponse{Sweets: sweets})
}

// Get godoc
// @Summary Get a single sweet
// @Tags sweets
// @Produce json
// @Param id path string true "Sweet ID"
// @Success 200 {object} SweetResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets/{id} [get]
func (h *SweetHandler) Get(c echo.Context) error {
	id, err := parseSweetID(c)
	if err != nil {
		return err
	}

	sweet, err := h.sweetService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SweetResponse{Sweet: sweet})
}

// Search godoc
// @Summary Search sweets
// @Tags sweets
// @Produce json
// @Param q query string false "Free-text match on name, category, description"
// @Param category query string false "Exact category"
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Success 200 {object} SweetListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	filter := repository.SweetFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				errors.NewErrorResponse("minPrice must be a number", "VALIDATION_ERROR"))
		}
		filter.MinPrice = &price
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				errors.NewErrorResponse("maxPrice must be a number", "VALIDATION_ERROR"))
		}
		filter.MaxPrice = &price
	}

	sweets, err := h.sweetService.Search(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SweetListResponse{Sweets: sweets})
}

// Create godoc
// @Summary Create a sweet
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSweetRequest true "Sweet data"
// @Success 201 {object} SweetResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req CreateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			errors.NewErrorResponse("invalid request body", "INVALID_BODY"))
	}

	sweet, err := h.sweetService.Create(c.Request().Context(), service.SweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, SweetResponse{Sweet: sweet})
}

// Update godoc
// @Summary Update a sweet
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet ID"
// @Param request body UpdateSweetRequest true "Fields to update"
// @Success 200 {object} SweetResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	id, err := parseSweetID(c)
	if err != nil {
		return err
	}

	var req UpdateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			errors.NewErrorResponse("invalid request body", "INVALID_BODY"))
	}

	sweet, err := h.sweetService.Update(c.Request().Context(), id, service.SweetUpdate{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SweetResponse{Sweet: sweet})
}

// Delete godoc
// @Summary Delete a sweet
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	id, err := parseSweetID(c)
	if err != nil {
		return err
	}

	if err := h.sweetService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Sweet deleted successfully"})
}
