package dto

import "cinehub/internal/http-api/models"

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

func (d CreateCategoryDTO) ToModel() models.Category {
	return models.Category{
		Name: d.Name,
		Slug: d.Slug,
	}
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(c *models.Category) *CategoryResponse {
	return &CategoryResponse{
		Name: c.Name,
		Slug: c.Slug,
	}
}

type PaginatedCategoryResponse struct {
	Data []CategoryResponse `json:"data"`
	Pagination
}
