package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/open-agent-labs/skills-catalog/internal/http/response"
)

// BearerAuth сверяет Bearer токен со статическим секретом сервера.
// Пустой секрет закрывает маршрут полностью. Проверка идёт до любого обращения к данным.
func BearerAuth(secret string) gin.HandlerFunc {
	expected := []byte(secret)

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if len(expected) == 0 || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c)
			return
		}

		token := []byte(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
		if subtle.ConstantTimeCompare(token, expected) != 1 {
			response.Unauthorized(c)
			return
		}

		c.Next()
	}
}
