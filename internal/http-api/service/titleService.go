package service

import (
	"context"
	"errors"

	"cinehub/internal/cache"
	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrTitleNotFound = errors.New("title not found")

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, d dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, d dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
	ratings      *cache.RatingsCache
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
	ratings *cache.RatingsCache,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
		ratings:      ratings,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i]))
	}

	return &dto.PaginatedTitleResponse{
		Data:       responses,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	rating, found := s.ratings.Get(ctx, id)
	if !found {
		rating, err = s.reviewRepo.AverageScore(id)
		if err != nil {
			return nil, err
		}
		s.ratings.Set(ctx, id, rating)
	}
	title.Rating = rating

	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Create(ctx context.Context, d dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := models.ValidateYear(d.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        d.Name,
		Year:        d.Year,
		Description: d.Description,
	}

	if d.Category != nil {
		category, err := s.resolveCategory(*d.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(d.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Update(ctx context.Context, id int64, d dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if d.Name != nil {
		title.Name = *d.Name
	}
	if d.Year != nil {
		if err := models.ValidateYear(*d.Year); err != nil {
			return nil, err
		}
		title.Year = *d.Year
	}
	if d.Description != nil {
		title.Description = d.Description
	}
	if d.Category != nil {
		category, err := s.resolveCategory(*d.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if d.Genre != nil {
		genres, err := s.resolveGenres(*d.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	s.ratings.Invalidate(ctx, id)
	return nil
}

func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}
