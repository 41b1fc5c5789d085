package httpserver

import (
	"net/http"
	"strings"
	"time"

	authsvc "storefront/internal/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const claimsKey = "claims"

// requestLogger emits one structured line per request.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// authMiddleware verifies the bearer token and stores the claims on the
// context. Absent token yields 401, anything failing verification 403.
func authMiddleware(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token not found"})
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// adminOnly rejects non-admin callers. Must run after authMiddleware.
func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := mustClaims(c)
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			return
		}
		c.Next()
	}
}

func mustClaims(c *gin.Context) authsvc.Claims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(authsvc.Claims)
	return claims
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
