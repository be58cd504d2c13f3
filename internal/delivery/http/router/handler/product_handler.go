package handler

import (
	"log/slog"
	"net/http"
	"time"

	"shelflife/internal/delivery/http/response"
	"shelflife/internal/domain/entity"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product management handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

type createProductRequest struct {
	Barcode     string    `json:"barcode" validate:"required,max=64"`
	Name        string    `json:"name" validate:"required,max=200"`
	Description string    `json:"description"`
	Category    string    `json:"category" validate:"required"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	ExpiryDate  time.Time `json:"expiry_date" validate:"required"`
}

// updateProductRequest uses pointers so absent fields are left unchanged.
// The barcode is immutable and deliberately not accepted here.
type updateProductRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Price       *float64   `json:"price"`
	Stock       *int       `json:"stock"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

type adjustStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// CreateProduct handles product creation for the acting store.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), storeID, &usecase.CreateProductInput{
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		Category:    entity.Category(req.Category),
		Price:       req.Price,
		Stock:       req.Stock,
		ExpiryDate:  req.ExpiryDate,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct handles partial edits to a product the actor owns.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	input := &usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ExpiryDate:  req.ExpiryDate,
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		input.Category = &category
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), storeID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// GetProduct handles retrieving a single product by ID.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// GetProductByBarcode handles the barcode lookup used at the register.
func (h *ProductHandler) GetProductByBarcode(c echo.Context) error {
	barcode := c.Param("barcode")
	if barcode == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Barcode is required")
	}

	product, err := h.uc.GetProductByBarcode(c.Request().Context(), barcode)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// ListStoreProducts handles listing the acting store's products.
// Deactivated products are included when ?include_inactive=true.
func (h *ProductHandler) ListStoreProducts(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	includeInactive := c.QueryParam("include_inactive") == "true"

	products, err := h.uc.ListStoreProducts(c.Request().Context(), storeID, includeInactive)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// AdjustStock handles setting a product's stock to an absolute quantity.
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.AdjustStock(c.Request().Context(), storeID, productID, req.Stock)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Stock adjusted successfully")
}

// DeactivateProduct handles soft-deleting a product the actor owns.
func (h *ProductHandler) DeactivateProduct(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	if err := h.uc.DeactivateProduct(c.Request().Context(), storeID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deactivated"}, "Product deactivated successfully")
}
