package service

import (
	"context"
	"testing"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/roles"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTestReviewService(reviewRepo *MockReviewRepository, titleRepo *MockTitleRepository) ReviewService {
	return NewReviewService(reviewRepo, titleRepo, nil)
}

func TestReviewCreate_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	actor := Actor{ID: "author-id", Role: roles.User}
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByTitleAndAuthor", int64(1), "author-id").Return(nil, gorm.ErrRecordNotFound)
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Review).ID = 10
	}).Return(nil)
	mockReviewRepo.On("GetByID", int64(10)).Return(&models.Review{
		ID:       10,
		TitleID:  1,
		AuthorID: "author-id",
		Text:     "great",
		Score:    9,
		Author:   models.User{Username: "vasya"},
	}, nil)

	review, err := reviewService.Create(context.Background(), 1, actor, dto.CreateReviewDTO{Text: "great", Score: 9})

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, int64(10), review.ID)
	assert.Equal(t, "vasya", review.Author)
	assert.Equal(t, 9, review.Score)
	mockReviewRepo.AssertExpectations(t)
	mockTitleRepo.AssertExpectations(t)
}

func TestReviewCreate_ScoreOutOfRange(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	actor := Actor{ID: "author-id", Role: roles.User}

	for _, score := range []int{0, 11, -5} {
		review, err := reviewService.Create(context.Background(), 1, actor, dto.CreateReviewDTO{Text: "x", Score: score})
		assert.Equal(t, models.ErrScoreOutOfRange, err)
		assert.Nil(t, review)
	}
	mockTitleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReviewCreate_TitleNotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	review, err := reviewService.Create(context.Background(), 42, Actor{ID: "a", Role: roles.User}, dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.Equal(t, ErrTitleNotFound, err)
	assert.Nil(t, review)
	mockTitleRepo.AssertExpectations(t)
}

func TestReviewCreate_Duplicate(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByTitleAndAuthor", int64(1), "author-id").Return(&models.Review{ID: 7}, nil)

	review, err := reviewService.Create(context.Background(), 1, Actor{ID: "author-id", Role: roles.User}, dto.CreateReviewDTO{Text: "again", Score: 5})

	assert.Equal(t, ErrDuplicateReview, err)
	assert.Nil(t, review)
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// The pre-check can miss a concurrent insert; the unique index error must
// still surface as the duplicate error.
func TestReviewCreate_ConcurrentDuplicate(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByTitleAndAuthor", int64(1), "author-id").Return(nil, gorm.ErrRecordNotFound)
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(&pgconn.PgError{Code: "23505"})

	review, err := reviewService.Create(context.Background(), 1, Actor{ID: "author-id", Role: roles.User}, dto.CreateReviewDTO{Text: "again", Score: 5})

	assert.Equal(t, ErrDuplicateReview, err)
	assert.Nil(t, review)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewUpdate_AuthorCanEdit(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	stored := &models.Review{ID: 10, TitleID: 1, AuthorID: "author-id", Text: "ok", Score: 5}
	mockReviewRepo.On("GetByID", int64(10)).Return(stored, nil)
	mockReviewRepo.On("Update", mock.AnythingOfType("*models.Review")).Return(nil)

	newText := "better than I thought"
	newScore := 8
	review, err := reviewService.Update(context.Background(), 1, 10, Actor{ID: "author-id", Role: roles.User}, dto.UpdateReviewDTO{Text: &newText, Score: &newScore})

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, newText, stored.Text)
	assert.Equal(t, newScore, stored.Score)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewUpdate_ModeratorCanEdit(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	stored := &models.Review{ID: 10, TitleID: 1, AuthorID: "author-id", Text: "ok", Score: 5}
	mockReviewRepo.On("GetByID", int64(10)).Return(stored, nil)
	mockReviewRepo.On("Update", mock.AnythingOfType("*models.Review")).Return(nil)

	newText := "cleaned up"
	_, err := reviewService.Update(context.Background(), 1, 10, Actor{ID: "mod-id", Role: roles.Moderator}, dto.UpdateReviewDTO{Text: &newText})

	assert.NoError(t, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewUpdate_StrangerForbidden(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	stored := &models.Review{ID: 10, TitleID: 1, AuthorID: "author-id"}
	mockReviewRepo.On("GetByID", int64(10)).Return(stored, nil)

	newText := "vandalism"
	review, err := reviewService.Update(context.Background(), 1, 10, Actor{ID: "other-id", Role: roles.User}, dto.UpdateReviewDTO{Text: &newText})

	assert.Equal(t, ErrForbidden, err)
	assert.Nil(t, review)
	mockReviewRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestReviewUpdate_ScoreOutOfRange(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	score := 11
	review, err := reviewService.Update(context.Background(), 1, 10, Actor{ID: "author-id", Role: roles.User}, dto.UpdateReviewDTO{Score: &score})

	assert.Equal(t, models.ErrScoreOutOfRange, err)
	assert.Nil(t, review)
}

// A review reached through the wrong title path reads as missing.
func TestReviewGet_TitleMismatch(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockReviewRepo.On("GetByID", int64(10)).Return(&models.Review{ID: 10, TitleID: 2}, nil)

	review, err := reviewService.GetByID(context.Background(), 1, 10)

	assert.Equal(t, ErrReviewNotFound, err)
	assert.Nil(t, review)
}

func TestReviewDelete_Author(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockReviewRepo.On("GetByID", int64(10)).Return(&models.Review{ID: 10, TitleID: 1, AuthorID: "author-id"}, nil)
	mockReviewRepo.On("Delete", int64(10)).Return(nil)

	err := reviewService.Delete(context.Background(), 1, 10, Actor{ID: "author-id", Role: roles.User})

	assert.NoError(t, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewDelete_StrangerForbidden(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockReviewRepo.On("GetByID", int64(10)).Return(&models.Review{ID: 10, TitleID: 1, AuthorID: "author-id"}, nil)

	err := reviewService.Delete(context.Background(), 1, 10, Actor{ID: "other-id", Role: roles.User})

	assert.Equal(t, ErrForbidden, err)
	mockReviewRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestReviewList_TitleNotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	list, err := reviewService.GetTitleReviews(context.Background(), 42, 1, 20)

	assert.Equal(t, ErrTitleNotFound, err)
	assert.Nil(t, list)
}

func TestReviewList_Paginated(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := newTestReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByTitle", int64(1), 2, 1).Return([]models.Review{
		{ID: 11, TitleID: 1, Score: 7, Author: models.User{Username: "petya"}},
	}, int64(3), nil)

	list, err := reviewService.GetTitleReviews(context.Background(), 1, 2, 1)

	assert.NoError(t, err)
	assert.Len(t, list.Data, 1)
	assert.Equal(t, "petya", list.Data[0].Author)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.Page)
	mockReviewRepo.AssertExpectations(t)
}
