package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"` // bcrypt hash; empty for guest rows
	Role      string    `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
