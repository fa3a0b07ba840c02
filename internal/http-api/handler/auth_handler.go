package handler

import (
	"errors"
	"net/http"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the stateless auth endpoints. Both are rate
// limited per client IP.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	auth := router.Group("/auth", rateLimit)
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/token", h.CreateToken)
	}
}

// Signup creates or refreshes an inactive account and dispatches a
// confirmation code out-of-band
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestrictedUsername),
			errors.Is(err, service.ErrUsernameTooLong),
			errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrEmailMismatch),
			errors.Is(err, service.ErrUsernameMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

// CreateToken exchanges a (username, confirmation code) pair for a bearer
// access token and activates the account
// POST /api/v1/auth/token
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.CreateToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidConfirmationCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
