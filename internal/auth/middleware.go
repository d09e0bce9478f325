package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourname/fitplanner/internal/response"
)

const UserKey = "user"

func AuthMiddleware(provider Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			user, err := provider.ValidateToken(c.Request.Context(), token)
			if err == nil {
				c.Set(UserKey, user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Unauthorized"))
	}
}
