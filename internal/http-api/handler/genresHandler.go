package handler

import (
	"errors"
	"net/http"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)
		genres.POST("", authRequired, adminOnly, h.Create)
		genres.DELETE("/:slug", authRequired, adminOnly, h.Delete)
	}
}

// List retrieves genres with optional name search
// GET /api/v1/genres?search=&page=1&page_size=20
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	genres, err := h.genreService.List(c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, genres)
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSlug), errors.Is(err, service.ErrSlugInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// Delete removes a genre by slug; titles keep existing without it
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
