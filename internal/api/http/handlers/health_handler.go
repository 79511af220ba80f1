package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lpkia/helpdesk-service/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	store       *persistence.SQLite
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, store *persistence.SQLite, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: store, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.store.Ping(ctx); err != nil {
		depStatus["sqlite"] = err.Error()
		ready = false
	} else {
		depStatus["sqlite"] = "ok"
	}

	// Redis is optional: without it only the real-time refresh is lost.
	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
	} else {
		depStatus["redis"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success": false,
		"error":   "one or more dependencies unavailable",
	})
}
