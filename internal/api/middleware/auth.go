package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/auth"
)

// Authenticate validates the bearer token and puts the company identity
// into the request context.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("company_id", claims.CompanyID)
		c.Set("company_email", claims.Email)

		c.Next()
	}
}

// CompanyID returns the authenticated company id set by Authenticate.
func CompanyID(c *gin.Context) string {
	id, _ := c.Get("company_id")
	s, _ := id.(string)
	return s
}
