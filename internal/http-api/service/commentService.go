package service

import (
	"context"
	"errors"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/repository"
	"cinehub/internal/http-api/roles"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	Create(ctx context.Context, titleID, reviewID int64, actor Actor, d dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, actor Actor, d dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64, actor Actor) error
	GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	GetReviewComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, actor Actor, d dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.getPathReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     d.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, actor Actor, d dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.getPathComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !roles.CanModifyAuthored(actor.Role, actor.ID, comment.AuthorID) {
		return nil, ErrForbidden
	}

	if d.Text != nil {
		comment.Text = *d.Text
	}
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64, actor Actor) error {
	comment, err := s.getPathComment(titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !roles.CanModifyAuthored(actor.Role, actor.ID, comment.AuthorID) {
		return ErrForbidden
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getPathComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) GetReviewComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if _, err := s.getPathReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return &dto.PaginatedCommentResponse{
		Data:       responses,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}

func (s *commentService) getPathReview(titleID, reviewID int64) (*models.Review, error) {
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

func (s *commentService) getPathComment(titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.getPathReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
