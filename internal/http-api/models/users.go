package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"column:password_hash;not null" json:"-"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"` // gates the /api/admin routes
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate assigns a UUID when the caller left ID empty.
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
