package router

import (
	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/config"
	"github.com/open-agent-labs/skills-catalog/internal/http/handlers"
	"github.com/open-agent-labs/skills-catalog/internal/http/middleware"
)

func SetupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	skillHandler *handlers.SkillHandler,
	githubHandler *handlers.GitHubHandler,
	seedHandler *handlers.SeedHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	auth := middleware.BearerAuth(cfg.APISecret)

	// Сид доступен только в development.
	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", auth, seedHandler.Seed)
	}

	skills := api.Group("/skills")
	{
		skills.GET("", skillHandler.ListSkills)
		skills.GET("/:id", skillHandler.GetSkill)
	}

	// Запись требует токена; лимит защищает хранилище.
	writeRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	protectedSkills := api.Group("/skills")
	protectedSkills.Use(writeRateLimit, auth)
	{
		protectedSkills.POST("", skillHandler.UpsertSkill)
		protectedSkills.DELETE("/:id", skillHandler.DeleteSkill)
	}

	// Прокси GitHub расходует квоту токена, поэтому ограничен отдельно.
	githubGroup := api.Group("/github")
	githubGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		githubGroup.GET("/contents", middleware.RequireQuery("owner", "repo"), githubHandler.Contents)
		githubGroup.GET("/file", middleware.RequireQuery("owner", "repo", "path"), githubHandler.File)
		githubGroup.GET("/repo-meta", githubHandler.RepoMeta)
	}

	return r
}
