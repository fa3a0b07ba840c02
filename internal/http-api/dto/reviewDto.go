package dto

import (
	"time"

	"cinehub/internal/http-api/models"
)

// CreateReviewDTO for POST /titles/:title_id/reviews. Score carries no
// binding tag on purpose: a "required" tag would have gin reject score=0
// with its own binding text, while an absent or zero score must read as a
// range violation. Both this layer and the review service call
// models.ValidateScore so the message is the same either way.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score"`
}

func (d CreateReviewDTO) Validate() error {
	return models.ValidateScore(d.Score)
}

// UpdateReviewDTO for PATCH; nil fields are left untouched.
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty"`
}

func (d UpdateReviewDTO) Validate() error {
	if d.Score != nil {
		return models.ValidateScore(*d.Score)
	}
	return nil
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

type PaginatedReviewResponse struct {
	Data []ReviewResponse `json:"data"`
	Pagination
}
