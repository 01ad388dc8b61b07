package handlers

import (
	"net/http"
	"time"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login, logout and the identity endpoint.
type AuthHandler struct {
	Auth         services.AuthService
	CookieSecure bool
}

const sessionCookieMaxAge = int(7 * 24 * time.Hour / time.Second)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.Auth.Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// Successful registration logs the user in right away.
	token, err := h.Auth.IssueToken(user.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := h.Auth.IssueToken(user.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/auth/logout
func (h AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/auth/me
func (h AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// RequireUser guards this route; reaching here without identity is a wiring bug.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// setSessionCookie delivers the token as an HTTP-only, SameSite=Strict
// cookie so it is never readable from script.
func (h AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, sessionCookieMaxAge, "/", "", h.CookieSecure, true)
}

// clearSessionCookie overwrites the cookie with an already-expired empty
// value, making the client drop it.
func (h AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.CookieSecure, true)
}
