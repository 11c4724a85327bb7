package models

import "time"

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Stock       int        `json:"stock"`
	Category    string     `gorm:"index" json:"category"`
	Colors      StringList `gorm:"type:text" json:"colors"`
	Sizes       StringList `gorm:"type:text" json:"sizes"`
	Images      StringList `gorm:"type:text" json:"images"`
	Rating      float64    `json:"rating"` // derived: average of this product's reviews
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
