package sale

import (
	"errors"
	"fmt"
	"time"

	"magaza-backend/internal/models"
	"magaza-backend/internal/stock"

	"gorm.io/gorm"
)

var (
	ErrSaleNotFound     = errors.New("satış bulunamadı")
	ErrAlreadyCompleted = errors.New("satış zaten tamamlanmış")
	ErrCustomerNotFound = errors.New("müşteri bulunamadı")
	ErrMethodNotFound   = errors.New("ödeme yöntemi bulunamadı")
	ErrEmptyLines       = errors.New("satış satırı yok")
)

type LineInput struct {
	ProductID uint
	Quantity  float64
	Discount  float64 // tutar bazlı indirim
}

type OpenInput struct {
	CustomerID *uint
	Date       time.Time
	Lines      []LineInput
}

// Open - Taslak satış açar. Ürünler ve stok yeterliliği yazmadan önce
// doğrulanır; stok burada düşmez, kapanışa kadar taslak kalır.
// Birim fiyat ve maliyet satır üzerine o anki değerlerden sabitlenir.
func Open(db *gorm.DB, userID uint, in OpenInput) (*models.Sale, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyLines
	}

	var s models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.CustomerID != nil {
			var count int64
			if err := tx.Model(&models.Customer{}).
				Where("id = ? AND user_id = ?", *in.CustomerID, userID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrCustomerNotFound
			}
		}

		lines := make([]models.SaleLine, 0, len(in.Lines))
		var total float64
		for _, l := range in.Lines {
			var product models.Product
			if err := tx.First(&product, "id = ? AND user_id = ?", l.ProductID, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: ürün #%d", stock.ErrProductNotFound, l.ProductID)
				}
				return err
			}
			if product.Quantity < l.Quantity {
				return fmt.Errorf("%w: %s (stok %.2f, istenen %.2f)",
					stock.ErrInsufficientStock, product.Name, product.Quantity, l.Quantity)
			}

			lineTotal := l.Quantity * product.SalePrice
			lines = append(lines, models.SaleLine{
				UserID:    userID,
				ProductID: product.ID,
				Quantity:  l.Quantity,
				UnitPrice: product.SalePrice,
				CostPrice: product.PurchasePrice,
				Discount:  l.Discount,
				Total:     lineTotal,
			})
			total += lineTotal - l.Discount
		}

		s = models.Sale{
			UserID:      userID,
			CustomerID:  in.CustomerID,
			Date:        in.Date,
			IsCompleted: false,
			TotalAmount: total,
			Lines:       lines,
		}
		return tx.Create(&s).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Finalize - Satışı kapatır: her satır için stok düşer, ödeme yöntemi
// sabitlenir. Kapanmış satış ikinci kez kapatılamaz; stok yetersizse tüm
// işlem geri alınır ve satış taslak kalır.
func Finalize(db *gorm.DB, userID, saleID, paymentMethodID uint) (*models.Sale, error) {
	var s models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Lines").
			First(&s, "id = ? AND user_id = ?", saleID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		if s.IsCompleted {
			return ErrAlreadyCompleted
		}

		var method models.PaymentMethod
		if err := tx.First(&method, "id = ? AND user_id = ?", paymentMethodID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMethodNotFound
			}
			return err
		}

		for _, line := range s.Lines {
			if _, err := stock.Adjust(tx, userID, line.ProductID, -line.Quantity,
				stock.SaleReason(s.ID), s.Date); err != nil {
				return err
			}
		}

		s.IsCompleted = true
		s.PaymentMethodID = &method.ID
		return tx.Omit("Lines").Save(&s).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get - Satışı satırlarıyla döner.
func Get(db *gorm.DB, userID, saleID uint) (*models.Sale, error) {
	var s models.Sale
	err := db.Preload("Lines").Preload("PaymentMethod").
		First(&s, "id = ? AND user_id = ?", saleID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &s, nil
}
