package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/catalog"
	"github.com/open-agent-labs/skills-catalog/internal/dto"
	"github.com/open-agent-labs/skills-catalog/internal/http/response"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	store   catalog.Source
	catalog *catalog.Service
}

// NewHealthHandler создаёт новый health handler. store может быть nil.
func NewHealthHandler(store catalog.Source, catalog *catalog.Service) *HealthHandler {
	return &HealthHandler{store: store, catalog: catalog}
}

// Health обрабатывает GET /health.
// Недоступное хранилище не делает сервис нездоровым: чтение обслуживает резерв.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"

	switch {
	case h.store == nil:
		checks["database"] = "not configured"
	case h.store.Available(ctx):
		checks["database"] = "healthy"
	default:
		checks["database"] = "unreachable"
		status = "degraded"
	}

	response.Success(c, dto.HealthResponse{
		Status:  status,
		Backend: h.catalog.Backend(ctx),
		Checks:  checks,
	})
}
