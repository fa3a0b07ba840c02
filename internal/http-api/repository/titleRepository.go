package repository

import (
	"context"
	"fmt"

	"cinehub/internal/http-api/models"

	"gorm.io/gorm"
)

// TitleFilter holds the composable list predicates; zero values mean
// "no filtering on this field". All supplied predicates are ANDed.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Year         *int
	Name         string
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Create(title).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Save(title).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Category").
		First(&title, id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

// titleRatingRow is the page of (id, rating) pairs the ordering query yields.
type titleRatingRow struct {
	ID     int64
	Rating *float64
}

// List pages titles ordered by average review score descending (titles
// without reviews last) with name as the tie-break. Ordering and paging
// happen in SQL so pages stay consistent; the full rows are fetched in a
// second query and stitched back in page order.
func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	base := r.applyFilter(r.db.WithContext(ctx).Table("titles"), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).
		Distinct("titles.id").
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	var rows []titleRatingRow
	offset := (page - 1) * pageSize
	err := base.Session(&gorm.Session{}).
		Select("titles.id AS id, AVG(reviews.score) AS rating").
		Joins("LEFT JOIN reviews ON reviews.title_id = titles.id").
		Group("titles.id, titles.name").
		Order("rating DESC NULLS LAST, titles.name ASC").
		Limit(pageSize).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	if len(rows) == 0 {
		return []models.Title{}, total, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var titles []models.Title
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Category").
		Where("id IN ?", ids).
		Find(&titles).Error; err != nil {
		return nil, 0, fmt.Errorf("load titles: %w", err)
	}

	byID := make(map[int64]models.Title, len(titles))
	for _, t := range titles {
		byID[t.ID] = t
	}

	ordered := make([]models.Title, 0, len(rows))
	for _, row := range rows {
		t, ok := byID[row.ID]
		if !ok {
			continue
		}
		t.Rating = row.Rating
		ordered = append(ordered, t)
	}

	return ordered, total, nil
}

// ReplaceGenres swaps the title's genre set atomically.
func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	return nil
}

func (r *titleRepository) applyFilter(q *gorm.DB, filter TitleFilter) *gorm.DB {
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	if filter.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	return q
}
