package middleware

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey = "currentUser"

	// SessionCookie is the cookie name carrying the session JWT.
	SessionCookie = "token"
)

// ResolveUser attaches the session identity to the request when a valid
// token cookie is present. It never rejects: a missing, invalid or expired
// token simply leaves the request anonymous, and RequireUser decides whether
// that matters. Public routes can therefore decorate responses with identity
// without risking a 401.
func ResolveUser(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		email, err := auth.ResolveToken(token)
		if err != nil {
			c.Next()
			return
		}

		// Token is valid but the account may have been deleted since.
		user, _, err := auth.Users.GetByEmail(email)
		if err == nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RequireUser aborts with 401 unless ResolveUser attached an identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity attached by ResolveUser, if any.
func CurrentUser(c *gin.Context) (models.User, bool) {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(models.User); ok {
			return u, true
		}
	}
	return models.User{}, false
}
