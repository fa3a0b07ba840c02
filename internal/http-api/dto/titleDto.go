package dto

import (
	"time"

	"cinehub/internal/http-api/models"
)

// CreateTitleDTO used for POST /titles; category and genres are referenced
// by slug, resolved by the title service.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genre       []string `json:"genre,omitempty"`
}

// UpdateTitleDTO used for PATCH /titles/:title_id (partial updates only)
type UpdateTitleDTO struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
}

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
	CreatedAt   time.Time         `json:"created_at"`
}

func FromModelToTitleResponse(t *models.Title) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
		CreatedAt:   t.CreatedAt,
	}
	if t.Category != nil {
		resp.Category = FromModelToCategoryResponse(t.Category)
	}
	for i := range t.Genres {
		resp.Genre = append(resp.Genre, *FromModelToGenreResponse(&t.Genres[i]))
	}
	return resp
}

type PaginatedTitleResponse struct {
	Data []TitleResponse `json:"data"`
	Pagination
}
