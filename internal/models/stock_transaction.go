package models

import "time"

type StockDirection string

const (
	StockDirectionIn  StockDirection = "IN"
	StockDirectionOut StockDirection = "OUT"
)

// StockTransaction: ürün bazlı stok hareket kaydı. Bir kez yazılır,
// asla güncellenmez veya silinmez.
type StockTransaction struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"index;not null"`
	ProductID      uint `gorm:"index;not null"`
	Product        Product
	QuantityChange float64        `gorm:"not null"`         // işaretli değişim (+giriş, -çıkış)
	Direction      StockDirection `gorm:"size:10;not null"` // "IN" / "OUT"
	Reason         string         `gorm:"size:100;not null"`
	Date           time.Time      `gorm:"index;not null"`
	BalanceAfter   float64        `gorm:"not null"` // hareket sonrası stok miktarı
	CreatedAt      time.Time
}
