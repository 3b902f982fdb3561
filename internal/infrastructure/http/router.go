// Package http hosts the operational HTTP listener. The business API is
// message-RPC only; this listener exposes health probes and Prometheus
// metrics, nothing else.
package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	natsio "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/commerceos/customer-system/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with the ops routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, nc *natsio.Conn) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("customer_ops"))

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb, nc)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
