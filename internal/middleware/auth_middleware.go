package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/authorization"
)

const authTokenCookieName = "auth_token"

// AuthMiddleware accepts HMAC-signed tokens from the Authorization header or
// the auth cookie and exposes their claims on the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization credentials required"})
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		if userID, ok := claims["user_id"].(float64); ok {
			c.Set("user_id", uint(userID))
		}
		for _, key := range []string{"email", "username", "role"} {
			if value, ok := claims[key].(string); ok {
				c.Set(key, value)
			}
		}

		c.Next()
	}
}

// bearerToken returns false when an Authorization header is present but malformed
// and no cookie can stand in for it.
func bearerToken(c *gin.Context) (string, bool) {
	cookieToken, _ := c.Cookie(authTokenCookieName)
	cookieToken = strings.TrimSpace(cookieToken)

	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return cookieToken, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1]), true
	}
	if cookieToken != "" {
		return cookieToken, true
	}
	return "", false
}

// RequirePermission rejects requests whose role claim lacks permission.
func RequirePermission(permission authorization.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, _ := c.Get("role")
		role, ok := authorization.ParseUserRole(value)
		if !ok || !authorization.RoleHasPermission(role, permission) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
