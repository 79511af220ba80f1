package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lpkia/helpdesk-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Tickets  *handlers.TicketsHandler
	Messages *handlers.MessagesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/users", cfg.Auth.ListUsers)
	authGroup.Post("/users", cfg.Auth.CreateUser)

	ticketsGroup := app.Group("/tickets")
	ticketsGroup.Get("/", cfg.Tickets.ListTickets)
	ticketsGroup.Post("/create", cfg.Tickets.CreateTicket)
	ticketsGroup.Patch("/update", cfg.Tickets.UpdateTicket)

	messagesGroup := app.Group("/messages")
	messagesGroup.Get("/", cfg.Messages.ListMessages)
	messagesGroup.Post("/send", cfg.Messages.SendMessage)
}
