package invoice

import (
	"errors"
	"time"

	"magaza-backend/internal/models"
	"magaza-backend/internal/stock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvoiceNotFound = errors.New("fatura bulunamadı")
	ErrCompanyNotFound = errors.New("firma bulunamadı")
	ErrEmptyLines      = errors.New("fatura satırı yok")
)

type LineInput struct {
	ProductID     uint
	Quantity      float64
	UnitPrice     float64
	DiscountRate1 float64
	DiscountRate2 float64
	TaxRate       float64
}

type Input struct {
	CompanyID       uint
	InvoiceNo       string
	InvoiceDate     time.Time
	PaymentMethodID *uint
	Lines           []LineInput
}

var hundred = decimal.NewFromInt(100)

// computeLine - Satır tutarlarını hesaplar. İki iskonto sırayla, ikincisi
// birincinin kalanına uygulanır; KDV iskonto sonrası tutardan alınır.
// Float üzerinden döndürülür ama aritmetik decimal ile yapılır.
func computeLine(in LineInput) (lineTotal, discountAmount, taxAmount float64) {
	qty := decimal.NewFromFloat(in.Quantity)
	price := decimal.NewFromFloat(in.UnitPrice)

	total := qty.Mul(price)
	afterDisc1 := total.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(in.DiscountRate1).Div(hundred)))
	afterDisc2 := afterDisc1.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(in.DiscountRate2).Div(hundred)))
	discount := total.Sub(afterDisc2)
	tax := afterDisc2.Mul(decimal.NewFromFloat(in.TaxRate).Div(hundred))

	return total.Round(2).InexactFloat64(),
		discount.Round(2).InexactFloat64(),
		tax.Round(2).InexactFloat64()
}

// buildLines - Satır modellerini kurar ve başlık toplamlarını biriktirir.
func buildLines(userID uint, inputs []LineInput) ([]models.PurchaseInvoiceLine, models.PurchaseInvoice) {
	var header models.PurchaseInvoice
	lines := make([]models.PurchaseInvoiceLine, 0, len(inputs))
	for _, in := range inputs {
		lineTotal, discount, tax := computeLine(in)
		lines = append(lines, models.PurchaseInvoiceLine{
			UserID:         userID,
			ProductID:      in.ProductID,
			Quantity:       in.Quantity,
			UnitPrice:      in.UnitPrice,
			DiscountRate1:  in.DiscountRate1,
			DiscountRate2:  in.DiscountRate2,
			TaxRate:        in.TaxRate,
			LineTotal:      lineTotal,
			DiscountAmount: discount,
			TaxAmount:      tax,
		})
		header.TotalAmount += lineTotal
		header.TotalDiscount += discount
		header.TotalTax += tax
		header.GrandTotal += lineTotal - discount + tax
	}
	return lines, header
}

// Create - Faturayı satırlarıyla tek transaction'da oluşturur, her satır için
// stok girişi yazar. Tanınmayan ürün tüm işlemi geri alır.
func Create(db *gorm.DB, userID uint, in Input) (*models.PurchaseInvoice, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyLines
	}

	var inv models.PurchaseInvoice
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Company{}).
			Where("id = ? AND user_id = ?", in.CompanyID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrCompanyNotFound
		}

		lines, totals := buildLines(userID, in.Lines)
		inv = models.PurchaseInvoice{
			UserID:          userID,
			CompanyID:       in.CompanyID,
			InvoiceNo:       in.InvoiceNo,
			InvoiceDate:     in.InvoiceDate,
			PaymentMethodID: in.PaymentMethodID,
			TotalAmount:     totals.TotalAmount,
			TotalDiscount:   totals.TotalDiscount,
			TotalTax:        totals.TotalTax,
			GrandTotal:      totals.GrandTotal,
			Lines:           lines,
		}

		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		for _, line := range inv.Lines {
			if _, err := stock.Adjust(tx, userID, line.ProductID, line.Quantity,
				stock.ReasonPurchaseInvoice, in.InvoiceDate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update - Önce eski satırların stok etkisi defter üzerinden geri alınır,
// sonra satırlar sıfırdan hesaplanıp yeniden uygulanır. Tek transaction.
func Update(db *gorm.DB, userID, invoiceID uint, in Input) (*models.PurchaseInvoice, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyLines
	}

	var inv models.PurchaseInvoice
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Lines").
			First(&inv, "id = ? AND user_id = ?", invoiceID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		for _, line := range inv.Lines {
			if _, err := stock.Adjust(tx, userID, line.ProductID, -line.Quantity,
				stock.ReasonInvoiceUpdateReversal, in.InvoiceDate); err != nil {
				return err
			}
		}

		if err := tx.Where("purchase_invoice_id = ?", inv.ID).
			Delete(&models.PurchaseInvoiceLine{}).Error; err != nil {
			return err
		}

		lines, totals := buildLines(userID, in.Lines)
		for i := range lines {
			lines[i].PurchaseInvoiceID = inv.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}

		inv.CompanyID = in.CompanyID
		inv.InvoiceNo = in.InvoiceNo
		inv.InvoiceDate = in.InvoiceDate
		inv.PaymentMethodID = in.PaymentMethodID
		inv.TotalAmount = totals.TotalAmount
		inv.TotalDiscount = totals.TotalDiscount
		inv.TotalTax = totals.TotalTax
		inv.GrandTotal = totals.GrandTotal
		inv.Lines = lines
		if err := tx.Omit(clause.Associations).Save(&inv).Error; err != nil {
			return err
		}

		for _, line := range lines {
			if _, err := stock.Adjust(tx, userID, line.ProductID, line.Quantity,
				stock.ReasonPurchaseInvoice, in.InvoiceDate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Delete - Tüm satırların stok etkisini geri alıp faturayı satırlarıyla siler.
func Delete(db *gorm.DB, userID, invoiceID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var inv models.PurchaseInvoice
		if err := tx.Preload("Lines").
			First(&inv, "id = ? AND user_id = ?", invoiceID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		now := time.Now()
		for _, line := range inv.Lines {
			if _, err := stock.Adjust(tx, userID, line.ProductID, -line.Quantity,
				stock.ReasonInvoiceDeleteReversal, now); err != nil {
				return err
			}
		}

		if err := tx.Where("purchase_invoice_id = ?", inv.ID).
			Delete(&models.PurchaseInvoiceLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
}

// Get - Faturayı satırlarıyla döner.
func Get(db *gorm.DB, userID, invoiceID uint) (*models.PurchaseInvoice, error) {
	var inv models.PurchaseInvoice
	err := db.Preload("Lines").Preload("Company").
		First(&inv, "id = ? AND user_id = ?", invoiceID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}
