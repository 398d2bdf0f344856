package models

import "time"

type Personnel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:50"`
	Salary    float64
	StartDate time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
