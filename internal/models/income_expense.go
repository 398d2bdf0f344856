package models

import "time"

// Income - Satış dışı gelir (ör. kira, iade)
type Income struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index;not null"`
	Amount          float64   `gorm:"not null"`
	Date            time.Time `gorm:"index;not null"`
	Description     string    `gorm:"size:255"`
	PaymentMethodID *uint     `gorm:"index"`
	PaymentMethod   *PaymentMethod
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Expense struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index;not null"`
	Amount          float64   `gorm:"not null"`
	Date            time.Time `gorm:"index;not null"`
	Description     string    `gorm:"size:255"`
	PaymentMethodID *uint     `gorm:"index"`
	PaymentMethod   *PaymentMethod
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
