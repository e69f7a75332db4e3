package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxEmail = "email"
	CtxRole  = "role"
)

// RequireAuth проверяет bearer-токен, выданный внешним auth-сервисом,
// и кладёт email и роль в контекст. Сами токены здесь не выпускаются.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := strings.TrimSpace(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}

		// поддерживаем и "Bearer <token>", и голый токен
		if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
			parts := strings.SplitN(tokenStr, " ", 2)
			tokenStr = strings.TrimSpace(parts[1])
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token claims"})
			return
		}

		email, _ := claims["email"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token has no email claim"})
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			role = "User"
		}

		c.Set(CtxEmail, email)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// Identity достаёт email и роль, положенные RequireAuth
func Identity(c *gin.Context) (email, role string) {
	email = c.GetString(CtxEmail)
	role = c.GetString(CtxRole)
	if role == "" {
		role = "User"
	}
	return email, role
}
