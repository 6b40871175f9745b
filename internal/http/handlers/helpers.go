package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/github"
	"github.com/open-agent-labs/skills-catalog/internal/http/response"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
)

// Подсказки кэширования для ответов прокси.
const (
	cacheContents = "public, s-maxage=3600, stale-while-revalidate=60"
	cacheRepoMeta = "public, s-maxage=300, stale-while-revalidate=60"
)

// bindError отвечает 400 на ошибку разбора запроса.
func bindError(c *gin.Context, err error) {
	response.Error(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "invalid request: "+err.Error()))
}

// upstreamError переводит ошибку клиента GitHub в конверт 502 со статусом апстрима.
func upstreamError(c *gin.Context, err error) {
	var upErr *github.UpstreamError
	if errors.As(err, &upErr) {
		response.Error(c, apperror.Upstream(upErr.Status, err))
		return
	}
	response.Error(c, err)
}
