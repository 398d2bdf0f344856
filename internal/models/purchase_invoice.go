package models

import "time"

// PurchaseInvoice - Alış faturası. Toplam alanlar satırlardan hesaplanır,
// dışarıdan set edilmez.
type PurchaseInvoice struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index;not null"`
	CompanyID       uint `gorm:"index;not null"`
	Company         Company
	InvoiceNo       string    `gorm:"size:50"`
	InvoiceDate     time.Time `gorm:"index;not null"`
	PaymentMethodID *uint     `gorm:"index"` // boşsa açık hesap alım
	PaymentMethod   *PaymentMethod
	TotalAmount     float64 `gorm:"not null"` // iskonto öncesi satır toplamı
	TotalDiscount   float64 `gorm:"not null"`
	TotalTax        float64 `gorm:"not null"`
	GrandTotal      float64 `gorm:"not null"`
	Lines           []PurchaseInvoiceLine `gorm:"foreignKey:PurchaseInvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PurchaseInvoiceLine struct {
	ID                uint `gorm:"primaryKey"`
	UserID            uint `gorm:"index;not null"`
	PurchaseInvoiceID uint `gorm:"index;not null"`
	ProductID         uint `gorm:"index;not null"`
	Product           Product
	Quantity          float64 `gorm:"not null"`
	UnitPrice         float64 `gorm:"not null"`
	DiscountRate1     float64 `gorm:"not null;default:0"` // yüzde
	DiscountRate2     float64 `gorm:"not null;default:0"` // yüzde, 1. iskonto sonrası tutara uygulanır
	TaxRate           float64 `gorm:"not null;default:0"` // yüzde
	LineTotal         float64 `gorm:"not null"`           // miktar * birim fiyat
	DiscountAmount    float64 `gorm:"not null"`
	TaxAmount         float64 `gorm:"not null"`
	CreatedAt         time.Time
}
