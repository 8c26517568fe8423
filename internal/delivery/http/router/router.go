// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	ReviewHandler  *handler.ReviewHandler
	CartHandler    *handler.CartHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	catalogHandler *handler.CatalogHandler
	reviewHandler  *handler.ReviewHandler
	cartHandler    *handler.CartHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		catalogHandler: params.CatalogHandler,
		reviewHandler:  params.ReviewHandler,
		cartHandler:    params.CartHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Profile routes that require authentication
	userGroup := e.Group("/user", r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PATCH("/profile", r.userHandler.UpdateProfile)
		userGroup.DELETE("/profile", r.userHandler.DeleteAccount)
	}

	// Catalog browsing is public; every mutating route requires a login.
	e.GET("/categories", r.catalogHandler.ListCategories)
	e.POST("/categories", r.catalogHandler.CreateCategory, r.authMiddleware.Authenticate)
	e.PUT("/categories/:id", r.catalogHandler.RenameCategory, r.authMiddleware.Authenticate)
	e.DELETE("/categories/:id", r.catalogHandler.DeleteCategory, r.authMiddleware.Authenticate)

	e.GET("/products", r.catalogHandler.ListProducts)
	e.GET("/products/:id", r.catalogHandler.GetProduct)
	e.POST("/products", r.catalogHandler.CreateProduct, r.authMiddleware.Authenticate)
	e.PATCH("/products/:id", r.catalogHandler.UpdateProduct, r.authMiddleware.Authenticate)
	e.DELETE("/products/:id", r.catalogHandler.DeleteProduct, r.authMiddleware.Authenticate)
	e.POST("/products/:id/photos", r.catalogHandler.AddProductPhoto, r.authMiddleware.Authenticate)
	e.PUT("/products/:id/video", r.catalogHandler.SetProductVideo, r.authMiddleware.Authenticate)

	e.GET("/products/:id/ratings", r.catalogHandler.ListProductRatings)
	e.POST("/products/:id/ratings", r.catalogHandler.RateProduct, r.authMiddleware.Authenticate)

	e.GET("/products/:id/reviews", r.reviewHandler.ListProductReviews)
	e.POST("/products/:id/reviews", r.reviewHandler.CreateReview, r.authMiddleware.Authenticate)
	e.GET("/reviews/:id/replies", r.reviewHandler.ListReplies)
	e.DELETE("/reviews/:id", r.reviewHandler.DeleteReview, r.authMiddleware.Authenticate)

	// Cart routes act on the calling user's own cart.
	cartGroup := e.Group("/cart", r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:id", r.cartHandler.UpdateItemQuantity)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
		cartGroup.DELETE("/items", r.cartHandler.ClearCart)
	}
}
