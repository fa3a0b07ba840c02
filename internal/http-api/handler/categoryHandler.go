package handler

import (
	"errors"
	"net/http"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes. Listing is public; mutations
// are admin only.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", authRequired, adminOnly, h.Create)
		categories.DELETE("/:slug", authRequired, adminOnly, h.Delete)
	}
}

// List retrieves categories with optional name search
// GET /api/v1/categories?search=&page=1&page_size=20
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	categories, err := h.categoryService.List(c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSlug), errors.Is(err, service.ErrSlugInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Delete removes a category by slug
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
