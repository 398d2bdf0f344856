package models

import "time"

// Sale - Satış. Taslak olarak açılır, kapatılınca stok düşer ve
// ödeme yöntemi sabitlenir. Kapanma geri alınamaz.
type Sale struct {
	ID              uint  `gorm:"primaryKey"`
	UserID          uint  `gorm:"index;not null"`
	CustomerID      *uint `gorm:"index"`
	Customer        *Customer
	Date            time.Time `gorm:"index;not null"`
	IsCompleted     bool      `gorm:"not null;default:false"`
	PaymentMethodID *uint     `gorm:"index"` // sadece kapanışta atanır
	PaymentMethod   *PaymentMethod
	TotalAmount     float64    `gorm:"not null"`
	Lines           []SaleLine `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SaleLine struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	SaleID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Quantity  float64 `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"` // satış anındaki birim fiyat
	CostPrice float64 `gorm:"not null"` // satış anındaki alış fiyatı (kâr hesabı için)
	Discount  float64 `gorm:"not null;default:0"`
	Total     float64 `gorm:"not null"` // miktar * birim fiyat
	CreatedAt time.Time
}
