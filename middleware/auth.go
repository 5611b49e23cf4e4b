package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace-backend/models"
)

const IdentityContextKey = "identity"

// SessionResolver turns a raw access token into an identity, or nil for
// anything unusable.
type SessionResolver interface {
	Resolve(tokenStr string) *models.Identity
}

// extractToken pulls the access token from the Authorization header or the
// session cookie set at login.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// OptionalAuth resolves the session if one is presented. Any resolution
// failure degrades to anonymous; the request always proceeds.
func OptionalAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := sessions.Resolve(extractToken(c)); identity != nil {
			c.Set(IdentityContextKey, identity)
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a resolvable session.
func RequireAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := sessions.Resolve(extractToken(c))
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":       "Unauthorized",
				"redirect_to": "auth",
			})
			return
		}
		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// RequireDeveloper rejects sessions that do not carry the seller role. It
// must run after RequireAuth.
func RequireDeveloper() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if !identity.IsDeveloper() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Developer account required"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the resolved identity for the request, or nil when the
// request is anonymous.
func GetIdentity(c *gin.Context) *models.Identity {
	if val, ok := c.Get(IdentityContextKey); ok {
		if identity, ok := val.(*models.Identity); ok {
			return identity
		}
	}
	return nil
}
