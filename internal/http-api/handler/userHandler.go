package handler

import (
	"errors"
	"net/http"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/middleware"
	"cinehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers account management. Everything is admin only
// except the /users/me self-service pair.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	users := router.Group("/users", authRequired)
	{
		users.GET("/me", h.GetProfile)
		users.PATCH("/me", h.UpdateProfile)

		users.GET("", adminOnly, h.List)
		users.POST("", adminOnly, h.Create)
		users.GET("/:username", adminOnly, h.Get)
		users.PATCH("/:username", adminOnly, h.Update)
		users.DELETE("/:username", adminOnly, h.Delete)
	}
}

// GetProfile returns the authenticated account
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	actor := middleware.GetActor(c)

	user, err := h.userService.GetProfile(actor.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial self-service update; any role field in
// the payload is dropped, not rejected
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(actor.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// List retrieves accounts with optional username search
// GET /api/v1/users?search=&page=1&page_size=20
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	users, err := h.userService.List(c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// Create adds an account with an explicit role
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Get retrieves an account by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update applies a partial update, including role changes
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Param("username"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete removes an account
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("username")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrRestrictedUsername),
		errors.Is(err, service.ErrUsernameTooLong),
		errors.Is(err, service.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
