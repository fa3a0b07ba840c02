package dto

import "cinehub/internal/http-api/models"

type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

func (d CreateGenreDTO) ToModel() models.Genre {
	return models.Genre{
		Name: d.Name,
		Slug: d.Slug,
	}
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToGenreResponse(g *models.Genre) *GenreResponse {
	return &GenreResponse{
		Name: g.Name,
		Slug: g.Slug,
	}
}

type PaginatedGenreResponse struct {
	Data []GenreResponse `json:"data"`
	Pagination
}
