// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/RomanKim94/foodgram/handler"
	"github.com/RomanKim94/foodgram/service"

	"github.com/gin-gonic/gin"
)

// bearer extracts the token from "Token <t>" or "Bearer <t>".
func bearer(header string) (string, bool) {
	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(header, scheme) {
			token := strings.TrimSpace(strings.TrimPrefix(header, scheme))
			return token, token != ""
		}
	}
	return "", false
}

// RequireAuth rejects requests without a valid token and stores the user ID
// under handler.PrincipalKey.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		token, ok := bearer(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header."})
			return
		}
		userID, err := auth.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token."})
			return
		}
		c.Set(handler.PrincipalKey, userID)
		c.Next()
	}
}

// OptionalAuth identifies the user when a valid token is sent and lets
// anonymous requests through. An invalid token is still rejected.
func OptionalAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		token, ok := bearer(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header."})
			return
		}
		userID, err := auth.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token."})
			return
		}
		c.Set(handler.PrincipalKey, userID)
		c.Next()
	}
}
