// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"cartao/internal/config"
	"cartao/internal/handlers"
	"cartao/internal/integrations/customer"
	"cartao/internal/middleware"
	"cartao/internal/repositories"
	"cartao/internal/services/card"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	cardRepo := repositories.NewCardRepository(db, repositories.CacheService)

	customerClient := customer.NewClient(config.GetEnv("CUSTOMER_SERVICE_URL", "http://localhost:8081"))

	cardService := card.NewService(cardRepo, customerClient, card.Config{
		MaxCardsPerCustomer: config.GetIntEnv("CARD_MAX_PER_CUSTOMER", 2),
	})
	cardHandler := handlers.NewCardHandler(cardService)

	app.Get("/health", handlers.HealthCheck)

	cartao := app.Group("/cartao", middleware.Auth)
	cartao.Post("/", cardHandler.CreateCard)
	cartao.Get("/", cardHandler.GetCards)
	cartao.Post("/atualizaLimiteCartao/:valor", cardHandler.AdjustLimit)
	cartao.Get("/:id", cardHandler.GetCard)
	cartao.Put("/:id", cardHandler.UpdateCard)
	cartao.Delete("/:id", cardHandler.DeleteCard)
}
