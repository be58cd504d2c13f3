package handler

import (
	"log/slog"
	"net/http"

	"shelflife/internal/delivery/http/response"
	"shelflife/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DashboardHandler holds dependencies for store analytics handlers.
type DashboardHandler struct {
	uc     usecase.DashboardUsecase
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.DashboardUsecase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: logger,
	}
}

// Summary handles the dashboard headline figures for the acting store.
func (h *DashboardHandler) Summary(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	summary, err := h.uc.Summary(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Dashboard summary retrieved successfully")
}

// ExpiryReport handles the expiry classification report for the acting store.
func (h *DashboardHandler) ExpiryReport(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	report, err := h.uc.ExpiryReport(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "Expiry report retrieved successfully")
}

// SalesTrend handles the time-bucketed sales totals for the acting store.
// The bucketing unit comes from the ?unit= query parameter (daily, weekly
// or monthly).
func (h *DashboardHandler) SalesTrend(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	trend, err := h.uc.SalesTrend(c.Request().Context(), storeID, &usecase.SalesTrendInput{
		Unit: c.QueryParam("unit"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, trend, "Sales trend retrieved successfully")
}
