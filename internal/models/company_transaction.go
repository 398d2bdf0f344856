package models

import "time"

// CompanyTransactionType - Firma işlem tipi
type CompanyTransactionType string

const (
	CompanyTransactionDebt    CompanyTransactionType = "borc"  // firmaya borçlanma
	CompanyTransactionPayment CompanyTransactionType = "odeme" // firmaya ödeme
)

// CompanyTransaction - Firma cari hareketi (borç/ödeme)
type CompanyTransaction struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index;not null"`
	CompanyID       uint `gorm:"index;not null"`
	Company         Company
	Type            CompanyTransactionType `gorm:"size:20;not null;index"`
	Amount          float64                `gorm:"not null"`
	Date            time.Time              `gorm:"index;not null"`
	Description     string                 `gorm:"size:255"`
	PaymentMethodID *uint                  `gorm:"index"`
	PaymentMethod   *PaymentMethod
	CreatedAt       time.Time
}
