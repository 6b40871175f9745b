package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/dto"
	"github.com/open-agent-labs/skills-catalog/internal/github"
	"github.com/open-agent-labs/skills-catalog/internal/http/response"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
	"github.com/open-agent-labs/skills-catalog/internal/service"
)

// GitHubHandler проксирует просмотр репозиториев навыков.
type GitHubHandler struct {
	proxy *service.GitHubService
}

// NewGitHubHandler создаёт новый handler прокси.
func NewGitHubHandler(proxy *service.GitHubService) *GitHubHandler {
	return &GitHubHandler{proxy: proxy}
}

// Contents обрабатывает GET /api/github/contents.
// Директории идут первыми, внутри групп - по имени.
func (h *GitHubHandler) Contents(c *gin.Context) {
	var query dto.GitHubPathQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	entries, err := h.proxy.Contents(c.Request.Context(), query.Owner, query.Repo, cleanPath(query.Path), query.Branch)
	if err != nil {
		upstreamError(c, err)
		return
	}

	c.Header("Cache-Control", cacheContents)
	response.Success(c, entries)
}

// File обрабатывает GET /api/github/file.
func (h *GitHubHandler) File(c *gin.Context) {
	var query dto.GitHubPathQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	path := cleanPath(query.Path)
	file, err := h.proxy.File(c.Request.Context(), query.Owner, query.Repo, path, query.Branch)
	if err != nil {
		upstreamError(c, err)
		return
	}

	c.Header("Cache-Control", cacheContents)
	response.Success(c, dto.NewFileResponse(path, file))
}

// RepoMeta обрабатывает GET /api/github/repo-meta. Принимает url или owner+repo.
func (h *GitHubHandler) RepoMeta(c *gin.Context) {
	var query dto.RepoMetaQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	owner, repo := strings.TrimSpace(query.Owner), strings.TrimSpace(query.Repo)
	if query.URL != "" {
		ref, err := github.ParseRepositoryURL(query.URL)
		if err != nil {
			response.Error(c, apperror.ErrRepositoryURLFormat)
			return
		}
		owner, repo = ref.Owner, ref.Repo
	}
	if owner == "" || repo == "" {
		response.BadRequest(c, "url or owner and repo are required")
		return
	}

	meta, err := h.proxy.RepoMeta(c.Request.Context(), owner, repo)
	if err != nil {
		upstreamError(c, err)
		return
	}

	c.Header("Cache-Control", cacheRepoMeta)
	response.Success(c, meta)
}

func cleanPath(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}
