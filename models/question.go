package models

import "time"

type Question struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Question   string    `json:"question" gorm:"type:text;not null"`
	Answer     string    `json:"answer" gorm:"type:text;not null"`
	Category   uint      `json:"category" gorm:"not null;index"` // references Category.ID
	Difficulty int       `json:"difficulty" gorm:"not null"`
	CreatedAt  time.Time `json:"-"`
}
