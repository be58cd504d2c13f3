package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shelflife/internal/delivery/http/response"
	"shelflife/internal/domain/entity"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PurchaseHandler holds dependencies for purchase handlers.
type PurchaseHandler struct {
	uc     usecase.PurchaseUsecase
	logger *slog.Logger
}

// NewPurchaseHandler is the constructor for PurchaseHandler, injected by Fx.
func NewPurchaseHandler(uc usecase.PurchaseUsecase, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		uc:     uc,
		logger: logger,
	}
}

type purchaseLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

type recordPurchaseRequest struct {
	StoreID       uuid.UUID             `json:"store_id" validate:"required"`
	Lines         []purchaseLineRequest `json:"lines" validate:"required,min=1,dive"`
	PaymentMethod string                `json:"payment_method" validate:"required"`
}

// RecordPurchase handles recording a purchase for the acting customer.
func (h *PurchaseHandler) RecordPurchase(c echo.Context) error {
	customerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req recordPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid purchase input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	lines := make([]usecase.PurchaseLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, usecase.PurchaseLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	record, err := h.uc.RecordPurchase(c.Request().Context(), customerID, &usecase.RecordPurchaseInput{
		StoreID:       req.StoreID,
		Lines:         lines,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, record, "Purchase recorded successfully")
}

// GetPurchase handles retrieving one purchase visible to the actor.
func (h *PurchaseHandler) GetPurchase(c echo.Context) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid purchase ID")
	}

	record, err := h.uc.GetPurchase(c.Request().Context(), userID, purchaseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, record, "Purchase retrieved successfully")
}

// History handles listing the acting customer's purchase history.
func (h *PurchaseHandler) History(c echo.Context) error {
	customerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, offset := pagingParams(c)

	records, err := h.uc.CustomerHistory(c.Request().Context(), customerID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, records, "Purchase history retrieved successfully")
}

// StoreSales handles listing purchases recorded at the acting store.
func (h *PurchaseHandler) StoreSales(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, offset := pagingParams(c)

	records, err := h.uc.StoreSales(c.Request().Context(), storeID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, records, "Store sales retrieved successfully")
}

// ReceiptQR renders the receipt QR code PNG for a purchase.
func (h *PurchaseHandler) ReceiptQR(c echo.Context) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid purchase ID")
	}

	png, err := h.uc.ReceiptQR(c.Request().Context(), userID, purchaseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// pagingParams reads limit/offset query parameters; the use case normalizes
// out-of-range values.
func pagingParams(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))

	return limit, offset
}
