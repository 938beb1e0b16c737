package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"gorm.io/datatypes"

	"shopdb/internal/config"
	"shopdb/internal/database"
	"shopdb/internal/handlers"
	"shopdb/internal/middleware"
	"shopdb/internal/models"
	"shopdb/internal/repositories"
	"shopdb/internal/services"
	"shopdb/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// An .env file is optional; environment variables always win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Databases ---
	// Each service owns its own database. The connections are separate on
	// purpose: nothing at the SQL level links the four schemas together.
	userDB, err := database.Connect(cfg.DBType, cfg.UserDBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to user database: %v", err)
	}
	defer database.MustClose(userDB, "user")

	productDB, err := database.Connect(cfg.DBType, cfg.ProductDBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to product database: %v", err)
	}
	defer database.MustClose(productDB, "product")

	orderDB, err := database.Connect(cfg.DBType, cfg.OrderDBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to order database: %v", err)
	}
	defer database.MustClose(orderDB, "order")

	notificationDB, err := database.Connect(cfg.DBType, cfg.NotificationDBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to notification database: %v", err)
	}
	defer database.MustClose(notificationDB, "notification")

	// --- Migrations ---
	if err := database.MigrateUserSchema(userDB); err != nil {
		log.Fatalf("Failed to migrate user schema: %v", err)
	}
	if err := database.MigrateProductSchema(productDB); err != nil {
		log.Fatalf("Failed to migrate product schema: %v", err)
	}
	if err := database.MigrateOrderSchema(orderDB); err != nil {
		log.Fatalf("Failed to migrate order schema: %v", err)
	}
	if err := database.MigrateNotificationSchema(notificationDB); err != nil {
		log.Fatalf("Failed to migrate notification schema: %v", err)
	}

	// --- RabbitMQ ---
	// The broker is optional for local runs: services tolerate a nil
	// publisher and just skip event emission.
	var publisher services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
	} else {
		publisher = mqClient
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(userDB)
	productRepo := repositories.NewGORMProductRepository(productDB)
	orderRepo := repositories.NewGORMOrderRepository(orderDB)
	notificationRepo := repositories.NewGORMNotificationRepository(notificationDB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)
	notificationService := services.NewNotificationService(notificationRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected, middleware.RoleRequired(authService, "admin"))
	orderHandler.RegisterRoutes(protected)
	notificationHandler.RegisterRoutes(protected)

	// --- Order Event Consumer ---
	// Order events fan into the notification service: every created order
	// and every status change produces an in-app notification for the
	// order's user.
	if mqClient != nil {
		go func() {
			log.Println("Starting order event consumer...")
			bindings := []string{"order.created", "order.status_changed"}
			err := mqClient.Consume("notification-service.orders", bindings, func(msg amqp.Delivery) error {
				return handleOrderEvent(notificationService, msg)
			})
			if err != nil {
				log.Printf("Order event consumer stopped: %v", err)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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

// orderEvent is the shared shape of order.created and order.status_changed
// message bodies.
type orderEvent struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	UserID      uint   `json:"user_id"`
	Status      string `json:"status"`
	To          string `json:"to"`
}

// handleOrderEvent turns an order event into an in-app notification.
// Returning an error nacks and requeues the message.
func handleOrderEvent(notificationService *services.NotificationService, msg amqp.Delivery) error {
	var event orderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		// A malformed body will never parse; log and ack so it is not
		// redelivered forever.
		log.Printf("Discarding malformed order event: %v", err)
		return nil
	}

	var subject, content string
	switch msg.RoutingKey {
	case "order.created":
		subject = fmt.Sprintf("Order %s received", event.OrderNumber)
		content = fmt.Sprintf("Your order %s has been received and is being processed.", event.OrderNumber)
	case "order.status_changed":
		subject = fmt.Sprintf("Order %s updated", event.OrderNumber)
		content = fmt.Sprintf("Your order %s is now %s.", event.OrderNumber, event.To)
	default:
		log.Printf("Ignoring unexpected routing key %q", msg.RoutingKey)
		return nil
	}

	notification := &models.Notification{
		UserID:   event.UserID,
		Type:     models.NotificationTypeInApp,
		Priority: models.NotificationPriorityNormal,
		Subject:  &subject,
		Content:  content,
		Data:     datatypes.JSON(msg.Body),
	}
	if err := notificationService.Send(notification); err != nil {
		if errors.Is(err, services.ErrNotificationSuppressed) {
			log.Printf("Notification for order %s suppressed by user %d preferences", event.OrderNumber, event.UserID)
			return nil
		}
		return err
	}

	log.Printf("Queued order notification %d for user %d", notification.ID, event.UserID)
	return nil
}
