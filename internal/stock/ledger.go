package stock

import (
	"errors"
	"fmt"
	"time"

	"magaza-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("ürün bulunamadı")
	ErrInsufficientStock = errors.New("yetersiz stok")
)

// Hareket sebepleri. Fatura güncelleme/silme geri alımları da normal hareket
// olarak yazılır ki defter eksiksiz kalsın.
const (
	ReasonPurchaseInvoice       = "purchase_invoice"
	ReasonInvoiceUpdateReversal = "invoice_update_reversal"
	ReasonInvoiceDeleteReversal = "invoice_delete_reversal"
)

func SaleReason(saleID uint) string {
	return fmt.Sprintf("sale:%d", saleID)
}

// Adjust - Ürün stoğunu delta kadar değiştirir ve hareketi deftere yazar.
// Çağıranın transaction'ı içinde koşmalıdır; kısmi başarı durumunda rollback
// hareketi de geri alır. Negatife düşecek değişim uygulanmaz.
func Adjust(tx *gorm.DB, userID, productID uint, delta float64, reason string, date time.Time) (float64, error) {
	// Guard UPDATE'in kendisinde: iki eşzamanlı düşüş stale okuma üzerinden
	// aynı anda geçemez, satır kilidi commit'e kadar tutulur.
	res := tx.Model(&models.Product{}).
		Where("id = ? AND user_id = ? AND quantity + ? >= 0", productID, userID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Product{}).
			Where("id = ? AND user_id = ?", productID, userID).
			Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("%w: ürün #%d, değişim %.2f", ErrInsufficientStock, productID, delta)
	}

	var product models.Product
	if err := tx.First(&product, "id = ? AND user_id = ?", productID, userID).Error; err != nil {
		return 0, err
	}

	direction := models.StockDirectionIn
	if delta < 0 {
		direction = models.StockDirectionOut
	}

	record := models.StockTransaction{
		UserID:         userID,
		ProductID:      productID,
		QuantityChange: delta,
		Direction:      direction,
		Reason:         reason,
		Date:           date,
		BalanceAfter:   product.Quantity,
	}
	if err := tx.Create(&record).Error; err != nil {
		return 0, err
	}

	return product.Quantity, nil
}

// History - Ürünün stok hareketleri, en yeni önce. Salt okunur.
func History(db *gorm.DB, userID, productID uint) ([]models.StockTransaction, error) {
	var count int64
	if err := db.Model(&models.Product{}).
		Where("id = ? AND user_id = ?", productID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrProductNotFound
	}

	var records []models.StockTransaction
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).
		Order("date desc, id desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
