package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"retail-order-service/pkg/database"
)

type StatusHandlers struct {
	db *database.PostgresDB
}

func NewStatusHandlers(db *database.PostgresDB) *StatusHandlers {
	return &StatusHandlers{
		db: db,
	}
}

func (h *StatusHandlers) HealthCheck(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "retail-order-service",
		"version":   "1.0.0",
	}

	if err := h.db.HealthCheck(); err != nil {
		health["status"] = "unhealthy"
		health["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

func (h *StatusHandlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)
}
