package models

import "time"

type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"index;not null" json:"product_id"`
	UserID       *uint     `json:"user_id"` // nil for anonymous reviews
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `json:"comment"`
	HelpfulCount int       `gorm:"default:0" json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}
