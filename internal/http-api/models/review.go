package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Review is a reviewed game. Publishers and developers own their reviews (cascade delete).
type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"uniqueIndex;size:200;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	PublisherID int64     `json:"publisher_id" gorm:"not null;index"`
	DeveloperID int64     `json:"developer_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	ReleaseDate time.Time `json:"release_date" gorm:"type:date;not null"`

	ReviewScore  *float64   `json:"review_score,omitempty" gorm:"type:decimal(3,1);check:review_score >= 0 AND review_score <= 10"`
	ReviewText   string     `json:"review_text" gorm:"type:text"`
	ReviewedByID *string    `json:"reviewed_by_id,omitempty" gorm:"type:uuid;index"`
	ReviewDate   *time.Time `json:"review_date,omitempty"`

	FeaturedImage string `json:"featured_image" gorm:"size:255;not null;default:placeholder"`

	IsFeatured  bool      `json:"is_featured" gorm:"not null;default:false"`
	IsPublished bool      `json:"is_published" gorm:"not null;default:false"`
	Views       uint      `json:"views" gorm:"not null;default:0"`
	CreatedOn   time.Time `json:"created_on" gorm:"autoCreateTime;index"`
	UpdatedOn   time.Time `json:"updated_on" gorm:"autoUpdateTime"`

	LikesCount int64 `json:"likes_count" gorm:"->;-:migration"`

	// associations
	Publisher  Publisher `json:"publisher,omitempty" gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE;"`
	Developer  Developer `json:"developer,omitempty" gorm:"foreignKey:DeveloperID;constraint:OnDelete:CASCADE;"`
	ReviewedBy *User     `json:"reviewed_by,omitempty" gorm:"foreignKey:ReviewedByID;constraint:OnDelete:SET NULL;"`
	Genres     []Genre   `json:"genres,omitempty" gorm:"many2many:review_genres;constraint:OnDelete:CASCADE;"`
	Likes      []User    `json:"-" gorm:"many2many:review_likes;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Slug == "" {
		r.Slug = Slugify(r.Title)
	}
	if r.FeaturedImage == "" {
		r.FeaturedImage = PlaceholderImage
	}
	return nil
}

// ScoreDisplay renders the score as "9.5/10", or "No Score" when unset.
func (r Review) ScoreDisplay() string {
	if r.ReviewScore == nil {
		return "No Score"
	}
	return fmt.Sprintf("%.1f/10", *r.ReviewScore)
}
