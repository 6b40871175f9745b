package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/catalog"
	"github.com/open-agent-labs/skills-catalog/internal/dto"
	"github.com/open-agent-labs/skills-catalog/internal/http/response"
	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/service"
)

// SeedHandler загружает набор навыков в хранилище. Только для development.
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed обрабатывает POST /api/seed.
// Пустое тело или пустой список - загружается вшитый резервный набор.
func (h *SeedHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	var skills []models.Skill
	if len(req.Skills) == 0 {
		embedded, err := catalog.EmbeddedSkills()
		if err != nil {
			response.Error(c, err)
			return
		}
		skills = embedded
	} else {
		skills = make([]models.Skill, len(req.Skills))
		for i, s := range req.Skills {
			skills[i] = s.ToModel()
		}
	}

	result, err := h.seedService.Seed(c.Request.Context(), skills)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
