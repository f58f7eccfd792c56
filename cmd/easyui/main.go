package main

import (
	"context"
	"log"
	"net/http"

	"github.com/easyui/easyui-backend/config"
	"github.com/easyui/easyui-backend/internal/auth"
	handler "github.com/easyui/easyui-backend/internal/handler/http"
	"github.com/easyui/easyui-backend/internal/logger"
	"github.com/easyui/easyui-backend/internal/middleware"
	"github.com/easyui/easyui-backend/internal/momo"
	"github.com/easyui/easyui-backend/internal/repository"
	"github.com/easyui/easyui-backend/internal/repository/postgres"
	"github.com/easyui/easyui-backend/internal/service"
	"github.com/easyui/easyui-backend/internal/worker"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	token := auth.NewAuthToken([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// payment gateway client
	gateway := momo.NewClient(momo.Config{
		Endpoint:    cfg.MomoEndpoint,
		PartnerCode: cfg.MomoPartnerCode,
		AccessKey:   cfg.MomoAccessKey,
		SecretKey:   cfg.MomoSecretKey,
		IPNURL:      cfg.MomoIPNURL,
	})

	// dependency injection
	// user
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, token)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(authService, userService)

	// component
	componentRepo := repository.NewComponentRepository(db)
	componentService := service.NewComponentService(componentRepo)
	componentHandler := handler.NewComponentHandler(componentService)

	// comment
	commentRepo := repository.NewCommentRepository(db)
	commentService := service.NewCommentService(commentRepo, componentRepo)
	commentHandler := handler.NewCommentHandler(commentService)

	// cart
	cartRepo := repository.NewCartRepository(db)
	cartService := service.NewCartService(cartRepo, componentRepo)
	cartHandler := handler.NewCartHandler(cartService)

	// order
	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, cartRepo)
	orderHandler := handler.NewOrderHandler(orderService)

	// payment
	paymentRepo := repository.NewPaymentRepository(db)
	paymentService := service.NewPaymentService(orderRepo, paymentRepo, gateway)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// pending payment expirer
	expirer := worker.NewPaymentExpirer(paymentService, cfg.ExpireInterval, cfg.PendingTTL)
	go expirer.Run(ctx)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", userHandler.LoginUser())

	router.Get("/api/components", componentHandler.ListComponents())
	router.Post("/api/components/filter", componentHandler.FilterComponents())
	router.Get("/api/components/{id}", componentHandler.GetComponent())
	router.Get("/api/components/{id}/comments", commentHandler.ListComponentComments())

	// payment provider callbacks are unauthenticated
	router.Get("/api/payment/momo/return", paymentHandler.MomoReturn())
	router.Post("/api/payment/momo/ipn", paymentHandler.MomoIPN())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))

		group.Get("/api/user/profile", userHandler.GetProfile())
		group.Put("/api/user/profile", userHandler.UpdateProfile())

		group.Post("/api/components", componentHandler.CreateComponent())
		group.Put("/api/components/{id}", componentHandler.UpdateComponent())
		group.Delete("/api/components/{id}", componentHandler.DeleteComponent())
		group.Post("/api/components/{id}/tags", componentHandler.AddTags())
		group.Post("/api/components/{id}/like", componentHandler.LikeComponent())

		group.Post("/api/comments", commentHandler.CreateComment())
		group.Put("/api/comments/{id}", commentHandler.UpdateComment())
		group.Delete("/api/comments/{id}", commentHandler.DeleteComment())

		group.Get("/api/user/cart", cartHandler.GetUserCart())
		group.Post("/api/user/cart", cartHandler.AddToCart())
		group.Put("/api/user/cart/{id}", cartHandler.UpdateCartItem())
		group.Delete("/api/user/cart/{id}", cartHandler.RemoveFromCart())

		group.Post("/api/user/orders", orderHandler.CreateOrder())
		group.Get("/api/user/orders", orderHandler.ListUserOrders())
		group.Get("/api/user/orders/{id}", orderHandler.GetOrder())
		group.Get("/api/user/purchases", orderHandler.ListPurchases())

		group.Post("/api/payment/momo/create", paymentHandler.CreateMomoPayment())
		group.Get("/api/payment/status/{orderId}", paymentHandler.GetPaymentStatus())

		// admin only
		group.Group(func(admin chi.Router) {
			admin.Use(handler.AdminMiddleware())
			admin.Get("/api/admin/orders", orderHandler.ListAllOrders())
			admin.Put("/api/admin/orders/{id}/status", orderHandler.UpdateOrderStatus())
		})
	})

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
