package service

import (
	"errors"
	"regexp"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugInUse        = errors.New("slug already in use")
	ErrInvalidSlug      = errors.New("slug must contain only letters, numbers, hyphens and underscores")
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

type CategoryService interface {
	Create(d dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(slug string) error
	List(search string, page, pageSize int) (*dto.PaginatedCategoryResponse, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(d dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if err := validateSlug(d.Slug); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindBySlug(d.Slug); err == nil {
		return nil, ErrSlugInUse
	}

	category := d.ToModel()
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}

	return dto.FromModelToCategoryResponse(&category), nil
}

func (s *categoryService) Delete(slug string) error {
	if err := s.categoryRepo.Delete(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *categoryService) List(search string, page, pageSize int) (*dto.PaginatedCategoryResponse, error) {
	categories, total, err := s.categoryRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}

	return &dto.PaginatedCategoryResponse{
		Data:       responses,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}
