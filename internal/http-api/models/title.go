package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;not null;index"`
	Year        int     `json:"year" gorm:"not null;index"`
	Description *string `json:"description,omitempty" gorm:"type:text"`

	// deleting a category detaches it from its titles rather than
	// cascading the delete
	CategoryID *int64    `json:"-" gorm:"index"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`

	Genres []Genre `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`

	// derived: average review score, nil when the title has no reviews
	Rating *float64 `json:"rating" gorm:"-:all"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Title) TableName() string {
	return "titles"
}
