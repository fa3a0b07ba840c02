package service

import (
	"errors"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrGenreNotFound = errors.New("genre not found")

type GenreService interface {
	Create(d dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(slug string) error
	List(search string, page, pageSize int) (*dto.PaginatedGenreResponse, error)
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) Create(d dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if err := validateSlug(d.Slug); err != nil {
		return nil, err
	}
	if _, err := s.genreRepo.FindBySlug(d.Slug); err == nil {
		return nil, ErrSlugInUse
	}

	genre := d.ToModel()
	if err := s.genreRepo.Create(&genre); err != nil {
		return nil, err
	}

	return dto.FromModelToGenreResponse(&genre), nil
}

func (s *genreService) Delete(slug string) error {
	if err := s.genreRepo.Delete(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}

func (s *genreService) List(search string, page, pageSize int) (*dto.PaginatedGenreResponse, error) {
	genres, total, err := s.genreRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, *dto.FromModelToGenreResponse(&genres[i]))
	}

	return &dto.PaginatedGenreResponse{
		Data:       responses,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}
