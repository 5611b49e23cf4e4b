package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketplace-backend/middleware"
	"marketplace-backend/services"
)

// IAuthService is the surface the controller needs from the auth service.
type IAuthService interface {
	Register(ctx context.Context, fullName, email, password, role string) error
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*services.LoginResult, error)
	Logout(ctx context.Context, userID string) error
}

type AuthController struct {
	service IAuthService
}

func NewAuthController(service IAuthService) *AuthController {
	return &AuthController{service: service}
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required,oneof=customer developer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account with the role fixed at signup time.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name, email, password and account type are required"})
		return
	}

	if err := ac.service.Register(c.Request.Context(), req.FullName, req.Email, req.Password, req.UserType); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful! You can now sign in."})
}

// Login verifies credentials, sets the session cookies and returns the
// dashboard the client should redirect to.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	result, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookies(c, result)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Logged in successfully",
		"identity":    result.Identity,
		"redirect_to": result.RedirectTo,
	})
}

// Refresh rotates the refresh token and reissues the pair.
func (ac *AuthController) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing refresh token"})
		return
	}

	result, err := ac.service.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookies(c, result)
	c.JSON(http.StatusOK, gin.H{"message": "Tokens refreshed"})
}

// Logout revokes the user's refresh tokens and clears the session cookies.
func (ac *AuthController) Logout(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity != nil {
		if err := ac.service.Logout(c.Request.Context(), identity.UserID); err != nil {
			zap.L().Warn("Failed to revoke refresh tokens",
				zap.String("user_id", identity.UserID), zap.Error(err))
		}
	}

	clearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session reports the resolved identity, or null for an anonymous request.
// Resolution failures look identical to no session at all.
func (ac *AuthController) Session(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusOK, gin.H{"identity": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"identity":    identity,
		"redirect_to": identity.DashboardTarget(),
	})
}

func setSessionCookies(c *gin.Context, result *services.LoginResult) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", result.Tokens.AccessToken, 900, "/", "", false, true)
	c.SetCookie("refresh_token", result.Tokens.RefreshToken, 7*24*3600, "/auth", "", false, true)
}

func clearSessionCookies(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/auth", "", false, true)
}
