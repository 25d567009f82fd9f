package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"roundtable/internal/database"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db    *database.DB
	tools int
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB, toolCount int) *HealthHandler {
	return &HealthHandler{db: db, tools: toolCount}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	status := "healthy"
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
		}
	}
	return c.JSON(fiber.Map{
		"status":    status,
		"tools":     h.tools,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
