package models

import "time"

// Customer - Müşteri. Balance, borç/ödeme oluşturuldukça senkron güncellenen
// önbellek değerdir; gerçek bakiye ekstreden yeniden hesaplanabilir.
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:50"`
	Address   string `gorm:"size:255"`
	Balance   float64 `gorm:"not null;default:0"` // borç - ödeme
	CreatedAt time.Time
	UpdatedAt time.Time
}
