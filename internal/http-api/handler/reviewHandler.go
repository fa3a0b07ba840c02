package handler

import (
	"errors"
	"net/http"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/middleware"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes nested under a title. Reads are
// public; create requires any authenticated role; update/delete are
// checked against authorship and moderator tier in the service.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	reviews := router.Group("/titles/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)
		reviews.POST("", authRequired, h.Create)
		reviews.PATCH("/:review_id", authRequired, h.Update)
		reviews.DELETE("/:review_id", authRequired, h.Delete)
	}
}

// List retrieves a title's reviews
// GET /api/v1/titles/:title_id/reviews?page=1&page_size=20
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return
	}

	page, pageSize := pagination(c)

	reviews, err := h.reviewService.GetTitleReviews(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// Get retrieves a single review
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), titleID, reviewID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// Create posts the actor's review of a title; one review per author per
// title
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// field-level check; the service repeats it with the same message
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), titleID, middleware.GetActor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// Update partially updates a review
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), titleID, reviewID, middleware.GetActor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// Delete removes a review
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), titleID, reviewID, middleware.GetActor(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleNotFound), errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateReview), errors.Is(err, models.ErrScoreOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
