package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/cohortly/pkg/helpers"
	"github.com/oksasatya/cohortly/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "role"
)

// Auth validates the bearer token and sets userID and role in the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects users whose token carries another role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRoleKey) != role {
			response.Abort(c, http.StatusForbidden, "only a "+role+" can do this", nil)
			return
		}
		c.Next()
	}
}
