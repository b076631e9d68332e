package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"dessertshop/internal/cart"
	"dessertshop/internal/config"
	"dessertshop/internal/events"
	"dessertshop/internal/handlers"
	"dessertshop/internal/models"
	"dessertshop/internal/orders"
	"dessertshop/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	// The broker is optional: without it the shop still runs, events are
	// simply not forwarded.
	var broker events.Broker
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQEnabled {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		mqClient = client
		broker = client
		defer mqClient.Close()
	}

	app := newApp(cfg, logger, broker)

	if mqClient != nil {
		logger.Info().Msg("starting shop event consumer")
		err := mqClient.Consume(func(msg amqp.Delivery) error {
			logger.Info().
				Str("type", msg.Type).
				Str("message_id", msg.MessageId).
				RawJSON("body", msg.Body).
				Msg("shop event received")
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to start shop event consumer")
		}
	}

	logger.Info().Str("port", cfg.AppPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logger.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
	logger.Info().Msg("server stopped")
}

// newApp wires the cart, order manager, and event publisher into a Fiber
// app. Split from main so tests can exercise the full routing surface.
func newApp(cfg *config.Config, logger zerolog.Logger, broker events.Broker) *fiber.App {
	shoppingCart := cart.New(logger)
	orderManager := orders.NewManager(logger)

	publisher := events.NewPublisher(broker, logger)
	publisher.BindCart(shoppingCart)

	dessertHandler := handlers.NewDessertHandler()
	cartHandler := handlers.NewCartHandler(shoppingCart, logger)
	orderHandler := handlers.NewOrderHandler(
		orderManager,
		shoppingCart,
		publisher,
		models.Currency(cfg.Currency),
		cfg.TaxRate,
		logger,
	)

	app := fiber.New()
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")
	dessertHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
