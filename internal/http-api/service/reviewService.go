package service

import (
	"context"
	"errors"

	"cinehub/internal/cache"
	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/repository"
	"cinehub/internal/http-api/roles"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("you have already reviewed this title")
	ErrForbidden       = errors.New("you don't have permission to modify this resource")
)

// Actor is the authenticated identity the middleware resolves from the
// bearer token. A zero Actor is anonymous.
type Actor struct {
	ID   string
	Role roles.Role
}

type ReviewService interface {
	Create(ctx context.Context, titleID int64, actor Actor, d dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, titleID, reviewID int64, actor Actor, d dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID int64, actor Actor) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	GetTitleReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	ratings    *cache.RatingsCache
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, ratings *cache.RatingsCache) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		ratings:    ratings,
	}
}

// Create attaches the actor as author and rejects a second review for the
// same (title, author) pair. The pair is guarded by the database unique
// index, so two concurrent creates resolve to one success and one
// conflict; the pre-check only exists to give the common case a clean
// error without burning a failed insert.
func (s *reviewService) Create(ctx context.Context, titleID int64, actor Actor, d dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.GetByTitleAndAuthor(titleID, actor.ID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     d.Text,
		Score:    d.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	s.ratings.Invalidate(ctx, titleID)

	// Reload with author data
	review, err := s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, actor Actor, d dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	review, err := s.getTitleReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !roles.CanModifyAuthored(actor.Role, actor.ID, review.AuthorID) {
		return nil, ErrForbidden
	}

	if d.Text != nil {
		review.Text = *d.Text
	}
	if d.Score != nil {
		review.Score = *d.Score
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	s.ratings.Invalidate(ctx, titleID)

	review, err = s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, actor Actor) error {
	review, err := s.getTitleReview(titleID, reviewID)
	if err != nil {
		return err
	}

	if !roles.CanModifyAuthored(actor.Role, actor.ID, review.AuthorID) {
		return ErrForbidden
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	s.ratings.Invalidate(ctx, titleID)
	return nil
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getTitleReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) GetTitleReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	return &dto.PaginatedReviewResponse{
		Data:       responses,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}

// getTitleReview loads a review and checks it belongs to the title in the
// path; a mismatch is indistinguishable from a missing review.
func (s *reviewService) getTitleReview(titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}
