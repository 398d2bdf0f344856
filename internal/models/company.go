package models

import "time"

// Company - Tedarikçi firma. Bakiye ayrıca tutulmaz, işlemlerden hesaplanır.
type Company struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:50"`
	TaxNo     string `gorm:"size:50"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
