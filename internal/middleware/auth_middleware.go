package middleware

import (
	"net/http"
	"strings"

	"flashdeck/internal/auth"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key under which the resolved caller identity
// is stored for downstream handlers.
const IdentityKey = "identity"

func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		ident, err := auth.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(IdentityKey, ident)
		c.Next()
	}
}

// IdentityFromContext returns the caller identity set by JWTAuthMiddleware,
// or nil when the request is unauthenticated.
func IdentityFromContext(c *gin.Context) *auth.Identity {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	ident, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return ident
}
