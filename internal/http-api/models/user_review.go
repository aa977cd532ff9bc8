package models

import "time"

// UserReview is a reader's rating of a game; one per (review, user).
type UserReview struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID     int64     `json:"review_id" gorm:"not null;uniqueIndex:idx_user_reviews_review_user"`
	UserID       string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_reviews_review_user"`
	Rating       int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 10"`
	ReviewText   string    `json:"review_text" gorm:"not null;type:text"`
	Approved     bool      `json:"approved" gorm:"not null;default:false"`
	HelpfulVotes uint      `json:"helpful_votes" gorm:"not null;default:0"`
	CreatedOn    time.Time `json:"created_on" gorm:"autoCreateTime"`

	// Associations
	Review Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (UserReview) TableName() string {
	return "user_reviews"
}
