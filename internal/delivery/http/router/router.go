// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shelflife/internal/delivery/http/middleware"
	"shelflife/internal/delivery/http/router/handler"
	"shelflife/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	ProductHandler      *handler.ProductHandler
	PurchaseHandler     *handler.PurchaseHandler
	DashboardHandler    *handler.DashboardHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	productHandler      *handler.ProductHandler
	purchaseHandler     *handler.PurchaseHandler
	dashboardHandler    *handler.DashboardHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		productHandler:      params.ProductHandler,
		purchaseHandler:     params.PurchaseHandler,
		dashboardHandler:    params.DashboardHandler,
		notificationHandler: params.NotificationHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/customer", r.userHandler.RegisterCustomer)
		authGroup.POST("/register/store", r.userHandler.RegisterStore)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.GET("/notifications/settings", r.notificationHandler.GetSettings)
		userGroup.PUT("/notifications/settings", r.notificationHandler.UpdateSettings)
	}

	// Product lookup routes available to any authenticated user
	productGroup := e.Group("/products")
	productGroup.Use(r.authMiddleware.Authenticate)
	{
		productGroup.GET("/:id", r.productHandler.GetProduct)
		productGroup.GET("/barcode/:barcode", r.productHandler.GetProductByBarcode)
	}

	// Purchase routes; recording and history require the customer role
	purchaseGroup := e.Group("/purchases")
	purchaseGroup.Use(r.authMiddleware.Authenticate)
	{
		purchaseGroup.POST("", r.purchaseHandler.RecordPurchase, r.authMiddleware.RequireRole(string(entity.RoleCustomer)))
		purchaseGroup.GET("/history", r.purchaseHandler.History, r.authMiddleware.RequireRole(string(entity.RoleCustomer)))
		purchaseGroup.GET("/:id", r.purchaseHandler.GetPurchase)
		purchaseGroup.GET("/:id/qr", r.purchaseHandler.ReceiptQR)
	}

	// Store routes that require authentication and the "admin" role
	storeGroup := e.Group("/store")
	storeGroup.Use(r.authMiddleware.Authenticate)
	storeGroup.Use(r.authMiddleware.RequireRole(string(entity.RoleAdmin)))
	{
		storeGroup.POST("/products", r.productHandler.CreateProduct)
		storeGroup.GET("/products", r.productHandler.ListStoreProducts)
		storeGroup.PUT("/products/:id", r.productHandler.UpdateProduct)
		storeGroup.PATCH("/products/:id/stock", r.productHandler.AdjustStock)
		storeGroup.DELETE("/products/:id", r.productHandler.DeactivateProduct)

		storeGroup.GET("/sales", r.purchaseHandler.StoreSales)

		storeGroup.GET("/dashboard", r.dashboardHandler.Summary)
		storeGroup.GET("/dashboard/expiry", r.dashboardHandler.ExpiryReport)
		storeGroup.GET("/dashboard/trend", r.dashboardHandler.SalesTrend)

		storeGroup.POST("/alerts/run", r.notificationHandler.TriggerAlerts)
	}
}
