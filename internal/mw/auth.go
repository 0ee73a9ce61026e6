package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"eldercare-backend/internal/auth"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// RequireAuth validates the Bearer token and stores the caller's identity
// in the request context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := auth.ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated account id from the context. The second
// result is false on unauthenticated requests.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
