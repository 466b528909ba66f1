package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplon-hub/code-hub/internal/observability"
	"github.com/simplon-hub/code-hub/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	pg      *persistence.Postgres
	redis   *persistence.Redis
	metrics *observability.Metrics
	version string
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics, version string) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis, metrics: metrics, version: version}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": h.version})
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	if err := h.pg.Ping(c.Context()); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}
	if err := h.redis.Ping(c.Context()); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	requests, errs, downloads, uploads := h.metrics.Snapshot()
	body := fiber.Map{
		"status": "ok",
		"checks": checks,
		"counters": fiber.Map{
			"requests":  requests,
			"errors":    errs,
			"downloads": downloads,
			"uploads":   uploads,
		},
	}

	if !healthy {
		body["status"] = "degraded"
		return c.Status(http.StatusServiceUnavailable).JSON(body)
	}
	return c.JSON(body)
}
