package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inventori/internal/config"
	"inventori/internal/handlers"
	"inventori/internal/middleware"
	"inventori/internal/models"
	"inventori/internal/repositories"
	"inventori/internal/services"
	"inventori/pkg/rabbitmq"
)

// openDatabase connects to postgres when a DSN is configured and falls back
// to a local sqlite file otherwise. TranslateError turns driver duplicate-key
// errors into gorm.ErrDuplicatedKey so the repositories can detect conflicts
// uniformly.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	if dsn := cfg.DatabaseDSN; dsn != "" && strings.Contains(dsn, "postgres") {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}
	path := cfg.DatabaseDSN
	if path == "" {
		path = "inventori.db"
	}
	return gorm.Open(sqlite.Open(path), gormCfg)
}

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	cfg := config.Load()

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, inventory events disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.IsDevelopment())
	productService := services.NewProductService(productRepo, mqClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	productHandler := handlers.NewProductHandler(productService)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimit,
	})

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(helmet.New())
	// CORS is permissive outside production; in production no CORS headers
	// are emitted, so cross-origin browser calls are denied by default.
	if !cfg.IsProduction() {
		app.Use(cors.New(cors.Config{
			AllowOrigins: "http://localhost:3000, http://localhost:3001",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	// Fixed-window rate limit over the whole API surface.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests from this IP, please try again later.",
			})
		},
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "OK",
			"message":   "Inventory Management API is running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	authRequired := middleware.AuthRequired(authService, userRepo)
	// Routes are mounted both under /api and at the root, matching the
	// public contract of the original deployment.
	api := app.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"), authRequired)
	productHandler.RegisterRoutes(api, authRequired)
	root := app.Group("")
	authHandler.RegisterRoutes(root, authRequired)
	productHandler.RegisterRoutes(root, authRequired)

	// Unmatched routes get the standard envelope.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})

	// --- Inventory Event Consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for inventory events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Inventory event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeInventoryEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s (env: %s)", cfg.Port, cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
