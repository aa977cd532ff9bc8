package models

import (
	"time"

	"gorm.io/gorm"
)

// PlaceholderImage is stored in media columns when no mirrored asset exists.
const PlaceholderImage = "placeholder"

// Company holds the columns shared by publishers and developers.
type Company struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	FoundedYear *int      `json:"founded_year,omitempty"`
	Website     string    `json:"website" gorm:"size:200"`
	Description string    `json:"description" gorm:"type:text"`
	Logo        string    `json:"logo" gorm:"size:255;not null;default:placeholder"`
	CreatedOn   time.Time `json:"created_on" gorm:"autoCreateTime"`
	UpdatedOn   time.Time `json:"updated_on" gorm:"autoUpdateTime"`

	// number of reviews referencing this company, only filled by list queries
	GamesCount int64 `json:"games_count" gorm:"->;-:migration"`
}

// BeforeCreate derives the slug from the name when none was given.
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if c.Logo == "" {
		c.Logo = PlaceholderImage
	}
	return nil
}

type Publisher struct {
	Company
}

func (Publisher) TableName() string {
	return "publishers"
}

func (p Publisher) Base() Company {
	return p.Company
}

type Developer struct {
	Company
}

func (Developer) TableName() string {
	return "developers"
}

func (d Developer) Base() Company {
	return d.Company
}

// CompanyModel is satisfied by the two company tables.
type CompanyModel interface {
	Publisher | Developer
	Base() Company
}
