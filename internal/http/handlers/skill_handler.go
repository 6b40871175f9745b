package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/catalog"
	"github.com/open-agent-labs/skills-catalog/internal/dto"
	"github.com/open-agent-labs/skills-catalog/internal/http/response"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
	"github.com/open-agent-labs/skills-catalog/internal/service"
)

// SkillHandler обслуживает каталог навыков.
type SkillHandler struct {
	catalog *catalog.Service
	skills  *service.SkillService
}

// NewSkillHandler создаёт новый handler каталога.
func NewSkillHandler(catalog *catalog.Service, skills *service.SkillService) *SkillHandler {
	return &SkillHandler{catalog: catalog, skills: skills}
}

// ListSkills обрабатывает GET /api/skills.
func (h *SkillHandler) ListSkills(c *gin.Context) {
	var query dto.ListSkillsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.catalog.ListPage(c.Request.Context(), query.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SkillListResponse{
		Skills: page.Skills,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetSkill обрабатывает GET /api/skills/:id. Идентификатор - id, slug или имя.
func (h *SkillHandler) GetSkill(c *gin.Context) {
	skill, err := h.catalog.ResolveSkill(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if skill == nil {
		response.Error(c, apperror.ErrSkillNotFound)
		return
	}

	response.Success(c, skill)
}

// UpsertSkill обрабатывает POST /api/skills.
func (h *SkillHandler) UpsertSkill(c *gin.Context) {
	var req dto.UpsertSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	skill, err := h.skills.Upsert(c.Request.Context(), req.ToModel())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, skill)
}

// DeleteSkill обрабатывает DELETE /api/skills/:id.
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	deleted, err := h.skills.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, deleted)
}
