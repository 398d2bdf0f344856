package models

import "time"

type Product struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        uint    `gorm:"index;not null"`
	Name          string  `gorm:"size:100;not null"`
	Barcode       string  `gorm:"size:50;index"`
	Unit          string  `gorm:"size:20"` // adet, kg, koli vs.
	Quantity      float64 `gorm:"not null;default:0"`
	PurchasePrice float64 `gorm:"not null;default:0"` // birim alış fiyatı
	SalePrice     float64 `gorm:"not null;default:0"` // birim satış fiyatı
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
