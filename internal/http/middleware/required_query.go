package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/http/response"
)

// RequireQuery проверяет наличие непустых query параметров.
// Использование: group.GET("/file", RequireQuery("owner", "repo", "path"), handler.File)
func RequireQuery(keys ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var missing []string
		for _, key := range keys {
			if strings.TrimSpace(c.Query(key)) == "" {
				missing = append(missing, key)
			}
		}

		if len(missing) > 0 {
			response.BadRequest(c, "missing required query parameters: "+strings.Join(missing, ", "))
			c.Abort()
			return
		}

		c.Next()
	}
}
