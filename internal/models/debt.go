package models

import "time"

// Debt - Müşteri borcu. Oluşturulduktan sonra değiştirilmez.
type Debt struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	CustomerID  uint `gorm:"index;not null"`
	Customer    Customer
	Amount      float64   `gorm:"not null"`
	Date        time.Time `gorm:"index;not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time
}

// Payment - Müşteri ödemesi. SaleID doluysa parçalı satışın kısmi ödemesidir.
type Payment struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index;not null"`
	CustomerID      uint `gorm:"index;not null"`
	Customer        Customer
	SaleID          *uint `gorm:"index"`
	Amount          float64   `gorm:"not null"`
	Date            time.Time `gorm:"index;not null"`
	Description     string    `gorm:"size:255"`
	PaymentMethodID *uint     `gorm:"index"`
	PaymentMethod   *PaymentMethod
	CreatedAt       time.Time
}
