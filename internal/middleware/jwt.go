package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Shibo14/ielts-mock/config"
	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "userRole"
)

// Auth validates the Bearer token and stores the acting user's id and role in
// the request context. Every core operation downstream re-checks ownership
// itself; this middleware only answers "who is calling".
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["userId"] == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token payload"})
			return
		}

		userID, ok := claims["userId"].(float64) // JWT numeric claims decode as float64
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token payload"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextUserIDKey, uint(userID))
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// RequireAdmin guards the admin route group. Runs after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRoleKey)
		if role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin role required"})
			return
		}
		c.Next()
	}
}

// ActingUser extracts the authenticated user's id and role set by Auth.
func ActingUser(c *gin.Context) (uint, string) {
	userID, _ := c.Get(ContextUserIDKey)
	role, _ := c.Get(ContextRoleKey)
	id, _ := userID.(uint)
	roleStr, _ := role.(string)
	return id, roleStr
}
