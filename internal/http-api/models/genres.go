package models

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`

	GamesCount int64 `json:"games_count" gorm:"->;-:migration"`
}

func (Genre) TableName() string {
	return "genres"
}
