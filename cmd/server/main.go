package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"sweetshop/docs"

	"sweetshop/internal/auth"
	"sweetshop/internal/cache"
	"sweetshop/internal/config"
	"sweetshop/internal/db"
	"sweetshop/internal/handler"
	"sweetshop/internal/metrics"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
	"sweetshop/internal/router"
	"sweetshop/internal/service"
)

// @title Sweet Shop API
// @version 1.0
// @description Inventory management API for a sweets catalog with JWT authentication and role-based authorization.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.StockMovement{},
			&model.Sweet{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Sweet{},
		&model.StockMovement{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	metrics.Init()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sweetRepo := repository.NewSweetRepository(gormDB)
	movementRepo := repository.NewStockMovementRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	authMW := auth.NewMiddleware(jwtService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	sweetService := service.NewSweetService(sweetRepo, cacheClient)
	inventoryService := service.NewInventoryService(sweetRepo, movementRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)

	// Register routes
	router.Register(
		e,
		cfg,
		authMW,
		authHandler,
		sweetHandler,
		inventoryHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
