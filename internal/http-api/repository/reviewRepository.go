package repository

import (
	"errors"

	"cinehub/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a database-level uniqueness
// failure. The one-review-per-(title, author) rule relies on the unique
// index, not an application-level existence check, so concurrent creates
// for the same pair resolve to exactly one success.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id int64) error
	GetByID(id int64) (*models.Review, error)
	GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
	GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error)
	AverageScore(titleID int64) (*float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update saves text and score only; pub_date is immutable.
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Model(review).
		Select("text", "score").
		Updates(map[string]any{"text": review.Text, "score": review.Score}).Error
}

func (r *reviewRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) GetByID(id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("Author").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ? AND author_id = ?", titleID, authorID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// AverageScore returns nil when the title has no reviews.
func (r *reviewRepository) AverageScore(titleID int64) (*float64, error) {
	var avg *float64
	err := r.db.Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}
