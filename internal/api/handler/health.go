package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler answers liveness probes: is the process alive?
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthDependenciesHandler answers readiness probes: are dependencies up?
type HealthDependenciesHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, rdb: rdb}
}

// Readiness handles GET /health/ready. It pings Mongo and Redis and reports
// each dependency's state; any failure turns the whole probe 503.
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	deps := map[string]string{"mongo": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := h.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		deps["mongo"] = "down"
		status = http.StatusServiceUnavailable
	}
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		deps["redis"] = "down"
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, deps)
}
