package middleware

import (
	"net/http"
	"strings"

	"Memehub/pkg/context"
	"Memehub/pkg/jwt"
	"Memehub/pkg/log"
	"Memehub/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Auth 必须登录
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, token)
		if err != nil {
			log.L.Debug("invalid token", zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxRole, claims.Role)

		c.Next()
	}
}

// OptionalAuth token 有效时写入用户信息，否则按匿名继续
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, token)
		if err == nil {
			c.Set(context.CtxUserID, claims.UserID)
			c.Set(context.CtxRole, claims.Role)
		}
		c.Next()
	}
}

// RequireRole 放在 Auth 之后
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if context.GetRole(c) != role {
			log.L.Warn("role required", zap.String("route", c.FullPath()), zap.String("role", role))
			response.Abort(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}
