// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"bookstore-service/internal/config"
	"bookstore-service/internal/db"
	"bookstore-service/internal/gateway/razorpay"
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
	"bookstore-service/internal/pkg/jwt"
	"bookstore-service/internal/pkg/ratelimit"
	"bookstore-service/internal/repository/postgres"
	authUsecase "bookstore-service/internal/service/auth"
	cartUsecase "bookstore-service/internal/service/cart"
	catalogUsecase "bookstore-service/internal/service/catalog"
	libraryUsecase "bookstore-service/internal/service/library"
	orderUsecase "bookstore-service/internal/service/order"
	paymentUsecase "bookstore-service/internal/service/payment"
	subscriptionUsecase "bookstore-service/internal/service/subscription"
	wishlistUsecase "bookstore-service/internal/service/wishlist"
	"bookstore-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Rate Limiter -----
	rateLimiter := ratelimit.NewRateLimiter(redisClient)

	// ----- Payment Gateway -----
	gateway := razorpay.NewClient(
		s.cfg.Razorpay.BaseURL,
		s.cfg.Razorpay.KeyID,
		s.cfg.Razorpay.KeySecret,
	)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	libraryRepo := postgres.NewLibraryRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)

	// ----- WebSocket Hub -----
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// ----- Services -----
	authService := authUsecase.NewService(userRepo, jwtManager, rateLimiter, logger)
	catalogService := catalogUsecase.NewService(productRepo)
	cartService := cartUsecase.NewService(cartRepo, s.cfg.ShippingFee, logger)
	orderService := orderUsecase.NewService(
		orderRepo,
		cartService,
		cartRepo,
		gateway,
		dbWrapper,
		hub,
		s.cfg.Razorpay.Currency,
		logger,
	)
	subscriptionService := subscriptionUsecase.NewService(
		subscriptionRepo,
		dbWrapper,
		hub,
		s.cfg.Razorpay.Currency,
		logger,
	)
	libraryService := libraryUsecase.NewService(libraryRepo, subscriptionService, logger)
	wishlistService := wishlistUsecase.NewService(wishlistRepo)
	historyService := paymentUsecase.NewService(orderRepo, subscriptionRepo)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:         authHandler.NewAuthHandler(authService, logger),
		CatalogHandler:      catalogHandler.NewCatalogHandler(catalogService),
		CartHandler:         cartHandler.NewCartHandler(cartService),
		CheckoutHandler:     checkoutHandler.NewCheckoutHandler(orderService),
		PaymentHandler:      paymentHandler.NewPaymentHandler(orderService, historyService, rateLimiter, logger),
		OrderHandler:        orderHandler.NewOrderHandler(orderService),
		SubscriptionHandler: subscriptionHandler.NewSubscriptionHandler(subscriptionService),
		LibraryHandler:      libraryHandler.NewLibraryHandler(libraryService),
		WishlistHandler:     wishlistHandler.NewWishlistHandler(wishlistService),
		AdminHandler:        adminHandler.NewAdminHandler(orderService),
		WSHandler:           wsHandler.NewWebSocketHandler(hub, authMiddleware, logger),
		AuthMiddleware:      authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
