package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"marketplace-api/internal/config"
	"marketplace-api/internal/database"
	"marketplace-api/internal/handlers"
	"marketplace-api/internal/middleware"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/routes"
	"marketplace-api/internal/services"
	"marketplace-api/internal/token"
	"marketplace-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.App.Env)
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting marketplace-api in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.OpenMongo(cfg.Mongo, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	rdb, err := database.OpenRedis(cfg.Redis, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	userRepo, err := repository.NewMongoUserRepo(db, cfg.Mongo.UserCollection)
	if err != nil {
		sugar.Fatal(err)
	}
	productRepo, err := repository.NewMongoProductRepo(db, cfg.Mongo.ProductCollection)
	if err != nil {
		sugar.Fatal(err)
	}
	tokenMgr := token.NewManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authSvc := services.NewAuthService(userRepo, tokenMgr, cfg.Security.PasswordHashCost, sugar)
	productSvc := services.NewProductService(productRepo, sugar)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return utils.JSONError(c, fe.Code, fe.Message)
			}
			sugar.Errorw("unhandled error", "path", c.Path(), "error", err)
			return utils.JSONError(c, fiber.StatusInternalServerError, "Something went wrong!")
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(sugar))
	limiter := middleware.NewRateLimiter(rdb, "ratelimit", cfg.Security.RateLimitRequests, cfg.RateLimitWindow)
	app.Use(limiter.Middleware())

	routes.Register(app, routes.Deps{
		Env:          cfg.App.Env,
		Authenticate: middleware.Authenticate(tokenMgr, userRepo),
		Auth:         handlers.NewAuthHandler(authSvc, sugar),
		Admin:        handlers.NewAdminHandler(authSvc, sugar),
		Vendor:       handlers.NewVendorHandler(productSvc, sugar),
		Customer:     handlers.NewCustomerHandler(productSvc, sugar),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if err := rdb.Close(); err != nil {
		sugar.Errorf("Redis client close error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
