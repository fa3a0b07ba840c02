package dto

import (
	"time"

	"cinehub/internal/http-api/models"
)

type CreateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentDTO struct {
	Text *string `json:"text,omitempty"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToCommentResponse(c *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author.Username,
		PubDate: c.PubDate,
	}
}

type PaginatedCommentResponse struct {
	Data []CommentResponse `json:"data"`
	Pagination
}
