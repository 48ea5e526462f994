// internal/app/router.go
package app

import (
	adminHandler "bookstore-service/internal/handlers/admin"
	authHandler "bookstore-service/internal/handlers/auth"
	cartHandler "bookstore-service/internal/handlers/cart"
	catalogHandler "bookstore-service/internal/handlers/catalog"
	checkoutHandler "bookstore-service/internal/handlers/checkout"
	libraryHandler "bookstore-service/internal/handlers/library"
	orderHandler "bookstore-service/internal/handlers/order"
	paymentHandler "bookstore-service/internal/handlers/payment"
	subscriptionHandler "bookstore-service/internal/handlers/subscription"
	wishlistHandler "bookstore-service/internal/handlers/wishlist"
	wsHandler "bookstore-service/internal/handlers/ws"
	"bookstore-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler         *authHandler.AuthHandler
	CatalogHandler      *catalogHandler.CatalogHandler
	CartHandler         *cartHandler.CartHandler
	CheckoutHandler     *checkoutHandler.CheckoutHandler
	PaymentHandler      *paymentHandler.PaymentHandler
	OrderHandler        *orderHandler.OrderHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
	LibraryHandler      *libraryHandler.LibraryHandler
	WishlistHandler     *wishlistHandler.WishlistHandler
	AdminHandler        *adminHandler.AdminHandler
	WSHandler           *wsHandler.WebSocketHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws/admin", h.WSHandler.HandleAdmin)

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)

		authProtected := auth.Group("")
		authProtected.Use(h.AuthMiddleware.Auth())
		{
			authProtected.GET("/me", h.AuthHandler.Me)
			authProtected.GET("/profile", h.AuthHandler.Profile)
			authProtected.POST("/address", h.AuthHandler.SaveAddress)
		}
	}

	// ==================== Catalog (public) ====================
	products := api.Group("/products")
	{
		products.GET("", h.CatalogHandler.List)
		products.GET("/:slug", h.CatalogHandler.BySlug)
	}

	// ==================== Cart ====================
	cart := api.Group("/cart")
	cart.Use(h.AuthMiddleware.Auth())
	{
		cart.POST("/add", h.CartHandler.Add)
		cart.GET("", h.CartHandler.List)
		cart.GET("/count", h.CartHandler.Count)
		cart.PUT("/:id", h.CartHandler.UpdateQuantity)
		cart.DELETE("/:id", h.CartHandler.Remove)
	}

	// ==================== Checkout & Payment ====================
	checkout := api.Group("/checkout")
	checkout.Use(h.AuthMiddleware.Auth())
	{
		checkout.POST("", h.CheckoutHandler.Checkout)
		checkout.GET("/me", h.AuthHandler.Profile)
		checkout.POST("/address", h.AuthHandler.SaveAddress)
	}

	payment := api.Group("/payment")
	payment.Use(h.AuthMiddleware.Auth())
	{
		payment.POST("/create-order", h.PaymentHandler.CreateOrder)
		payment.POST("/verify", h.PaymentHandler.Verify)
	}

	api.GET("/payment-history", h.AuthMiddleware.Auth(), h.PaymentHandler.History)

	// ==================== Orders ====================
	orders := api.Group("/orders")
	orders.Use(h.AuthMiddleware.Auth())
	{
		orders.GET("", h.OrderHandler.List)
		orders.GET("/history", h.OrderHandler.History)
		orders.GET("/:id", h.OrderHandler.Detail)
	}

	// ==================== Subscriptions ====================
	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.GET("/plans", h.SubscriptionHandler.Plans)

		subsAuth := subscriptions.Group("")
		subsAuth.Use(h.AuthMiddleware.Auth())
		{
			subsAuth.GET("/me", h.SubscriptionHandler.Current)
			subsAuth.GET("/access", h.SubscriptionHandler.Access)
			subsAuth.GET("/payments", h.SubscriptionHandler.Payments)
		}
	}

	subscriptionPayment := api.Group("/subscription-payment")
	subscriptionPayment.Use(h.AuthMiddleware.Auth())
	{
		subscriptionPayment.POST("/create", h.SubscriptionHandler.Create)
		subscriptionPayment.POST("/activate", h.SubscriptionHandler.Activate)
	}

	// ==================== My Books (purchases) ====================
	myBooks := api.Group("/my-books")
	myBooks.Use(h.AuthMiddleware.Auth())
	{
		myBooks.GET("", h.LibraryHandler.MyBooks)
	}

	// ==================== Subscription Library ====================
	library := api.Group("/mylibrary")
	library.Use(h.AuthMiddleware.Auth())
	{
		library.GET("", h.LibraryHandler.Library)
		library.GET("/read/:slug", h.LibraryHandler.Read)
		library.GET("/continue-reading", h.LibraryHandler.ContinueReading)
		library.GET("/bookmarks", h.LibraryHandler.AllBookmarks)
		library.GET("/favorites", h.LibraryHandler.Favorites)

		book := library.Group("/books/:id")
		{
			book.GET("/access", h.LibraryHandler.Access)
			book.POST("/progress", h.LibraryHandler.SaveProgress)
			book.GET("/progress", h.LibraryHandler.GetProgress)
			book.POST("/bookmarks", h.LibraryHandler.AddBookmark)
			book.GET("/bookmarks", h.LibraryHandler.Bookmarks)
			book.DELETE("/bookmarks", h.LibraryHandler.RemoveBookmark)
			book.GET("/favorite", h.LibraryHandler.IsFavorite)
			book.POST("/favorite", h.LibraryHandler.AddFavorite)
			book.DELETE("/favorite", h.LibraryHandler.RemoveFavorite)
		}
	}

	// ==================== Wishlist ====================
	wishlist := api.Group("/wishlist")
	wishlist.Use(h.AuthMiddleware.Auth())
	{
		wishlist.GET("", h.WishlistHandler.List)
		wishlist.POST("/:id/toggle", h.WishlistHandler.Toggle)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		admin.GET("/orders", h.AdminHandler.Orders)
	}
}
