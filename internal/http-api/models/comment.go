package models

import "time"

// UserComment is only shown publicly once approved.
type UserComment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID  int64     `json:"review_id" gorm:"not null;index"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Body      string    `json:"body" gorm:"not null;type:text"`
	Approved  bool      `json:"approved" gorm:"not null;default:false"`
	CreatedOn time.Time `json:"created_on" gorm:"autoCreateTime"`

	// Associations
	Review Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (UserComment) TableName() string {
	return "user_comments"
}
