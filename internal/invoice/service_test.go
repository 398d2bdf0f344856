package invoice

import (
	"testing"
	"time"

	"magaza-backend/internal/database"
	"magaza-backend/internal/models"
	"magaza-backend/internal/stock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func fixtures(t *testing.T, db *gorm.DB) (models.Company, models.Product, models.Product) {
	t.Helper()
	co := models.Company{UserID: 1, Name: "Toptancı A.Ş."}
	require.NoError(t, db.Create(&co).Error)
	p1 := models.Product{UserID: 1, Name: "Zeytinyağı 1L", Quantity: 0, PurchasePrice: 90, SalePrice: 120}
	p2 := models.Product{UserID: 1, Name: "Un 5kg", Quantity: 4, PurchasePrice: 50, SalePrice: 70}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)
	return co, p1, p2
}

func TestComputeLine(t *testing.T) {
	// 2 x 100, %10 + %10 iskonto, %18 KDV:
	// 200 -> 180 -> 162, iskonto 38, KDV 29.16
	lineTotal, discount, tax := computeLine(LineInput{
		Quantity:      2,
		UnitPrice:     100,
		DiscountRate1: 10,
		DiscountRate2: 10,
		TaxRate:       18,
	})
	assert.Equal(t, 200.0, lineTotal)
	assert.Equal(t, 38.0, discount)
	assert.Equal(t, 29.16, tax)

	t.Run("iskontosuz vergisiz satır", func(t *testing.T) {
		lineTotal, discount, tax := computeLine(LineInput{Quantity: 3, UnitPrice: 25})
		assert.Equal(t, 75.0, lineTotal)
		assert.Zero(t, discount)
		assert.Zero(t, tax)
	})
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	co, p1, p2 := fixtures(t, db)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	inv, err := Create(db, 1, Input{
		CompanyID:   co.ID,
		InvoiceNo:   "FTR-001",
		InvoiceDate: date,
		Lines: []LineInput{
			{ProductID: p1.ID, Quantity: 2, UnitPrice: 100, DiscountRate1: 10, DiscountRate2: 10, TaxRate: 18},
			{ProductID: p2.ID, Quantity: 6, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 500.0, inv.TotalAmount)
	assert.Equal(t, 38.0, inv.TotalDiscount)
	assert.Equal(t, 29.16, inv.TotalTax)
	assert.InDelta(t, 491.16, inv.GrandTotal, 0.001) // 191.16 + 300

	var prod1, prod2 models.Product
	require.NoError(t, db.First(&prod1, p1.ID).Error)
	require.NoError(t, db.First(&prod2, p2.ID).Error)
	assert.Equal(t, 2.0, prod1.Quantity)
	assert.Equal(t, 10.0, prod2.Quantity)

	var ledgerCount int64
	require.NoError(t, db.Model(&models.StockTransaction{}).
		Where("reason = ?", stock.ReasonPurchaseInvoice).Count(&ledgerCount).Error)
	assert.Equal(t, int64(2), ledgerCount)

	t.Run("bilinmeyen firma", func(t *testing.T) {
		_, err := Create(db, 1, Input{
			CompanyID:   9999,
			InvoiceDate: date,
			Lines:       []LineInput{{ProductID: p1.ID, Quantity: 1, UnitPrice: 10}},
		})
		require.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("satırsız fatura", func(t *testing.T) {
		_, err := Create(db, 1, Input{CompanyID: co.ID, InvoiceDate: date})
		require.ErrorIs(t, err, ErrEmptyLines)
	})
}

func TestCreateUnknownProductRollsBack(t *testing.T) {
	db := setupTestDB(t)
	co, p1, _ := fixtures(t, db)
	date := time.Now()

	_, err := Create(db, 1, Input{
		CompanyID:   co.ID,
		InvoiceNo:   "FTR-002",
		InvoiceDate: date,
		Lines: []LineInput{
			{ProductID: p1.ID, Quantity: 5, UnitPrice: 90},
			{ProductID: 9999, Quantity: 1, UnitPrice: 10},
		},
	})
	require.ErrorIs(t, err, stock.ErrProductNotFound)

	// İlk satırın etkisi dahil her şey geri alınmış olmalı.
	var prod models.Product
	require.NoError(t, db.First(&prod, p1.ID).Error)
	assert.Zero(t, prod.Quantity)

	var invCount, lineCount, ledgerCount int64
	require.NoError(t, db.Model(&models.PurchaseInvoice{}).Count(&invCount).Error)
	require.NoError(t, db.Model(&models.PurchaseInvoiceLine{}).Count(&lineCount).Error)
	require.NoError(t, db.Model(&models.StockTransaction{}).Count(&ledgerCount).Error)
	assert.Zero(t, invCount)
	assert.Zero(t, lineCount)
	assert.Zero(t, ledgerCount)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	co, p1, p2 := fixtures(t, db)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	inv, err := Create(db, 1, Input{
		CompanyID:   co.ID,
		InvoiceNo:   "FTR-003",
		InvoiceDate: date,
		Lines:       []LineInput{{ProductID: p1.ID, Quantity: 5, UnitPrice: 90}},
	})
	require.NoError(t, err)

	t.Run("aynı satırlarla güncelleme net sıfır", func(t *testing.T) {
		_, err := Update(db, 1, inv.ID, Input{
			CompanyID:   co.ID,
			InvoiceNo:   "FTR-003",
			InvoiceDate: date,
			Lines:       []LineInput{{ProductID: p1.ID, Quantity: 5, UnitPrice: 90}},
		})
		require.NoError(t, err)

		var prod models.Product
		require.NoError(t, db.First(&prod, p1.ID).Error)
		assert.Equal(t, 5.0, prod.Quantity)

		// Geri alma ve yeniden uygulama defterde iz bırakır.
		var reversals int64
		require.NoError(t, db.Model(&models.StockTransaction{}).
			Where("reason = ?", stock.ReasonInvoiceUpdateReversal).Count(&reversals).Error)
		assert.Equal(t, int64(1), reversals)
	})

	t.Run("satır değişimi farkı uygular", func(t *testing.T) {
		updated, err := Update(db, 1, inv.ID, Input{
			CompanyID:   co.ID,
			InvoiceNo:   "FTR-003",
			InvoiceDate: date,
			Lines: []LineInput{
				{ProductID: p1.ID, Quantity: 2, UnitPrice: 90},
				{ProductID: p2.ID, Quantity: 3, UnitPrice: 50},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 330.0, updated.GrandTotal) // 180 + 150

		var prod1, prod2 models.Product
		require.NoError(t, db.First(&prod1, p1.ID).Error)
		require.NoError(t, db.First(&prod2, p2.ID).Error)
		assert.Equal(t, 2.0, prod1.Quantity)
		assert.Equal(t, 7.0, prod2.Quantity) // 4 başlangıç + 3

		var lineCount int64
		require.NoError(t, db.Model(&models.PurchaseInvoiceLine{}).
			Where("purchase_invoice_id = ?", inv.ID).Count(&lineCount).Error)
		assert.Equal(t, int64(2), lineCount)
	})

	t.Run("bilinmeyen fatura", func(t *testing.T) {
		_, err := Update(db, 1, 9999, Input{
			CompanyID:   co.ID,
			InvoiceDate: date,
			Lines:       []LineInput{{ProductID: p1.ID, Quantity: 1, UnitPrice: 10}},
		})
		require.ErrorIs(t, err, ErrInvoiceNotFound)
	})
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	co, p1, p2 := fixtures(t, db)
	date := time.Now()

	inv, err := Create(db, 1, Input{
		CompanyID:   co.ID,
		InvoiceNo:   "FTR-004",
		InvoiceDate: date,
		Lines: []LineInput{
			{ProductID: p1.ID, Quantity: 3, UnitPrice: 90},
			{ProductID: p2.ID, Quantity: 2, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	require.NoError(t, Delete(db, 1, inv.ID))

	// Silme miktarları fatura öncesine döndürür.
	var prod1, prod2 models.Product
	require.NoError(t, db.First(&prod1, p1.ID).Error)
	require.NoError(t, db.First(&prod2, p2.ID).Error)
	assert.Zero(t, prod1.Quantity)
	assert.Equal(t, 4.0, prod2.Quantity)

	var invCount, lineCount int64
	require.NoError(t, db.Model(&models.PurchaseInvoice{}).Count(&invCount).Error)
	require.NoError(t, db.Model(&models.PurchaseInvoiceLine{}).Count(&lineCount).Error)
	assert.Zero(t, invCount)
	assert.Zero(t, lineCount)

	// Defterde hem girişler hem geri almalar durur.
	var reversals int64
	require.NoError(t, db.Model(&models.StockTransaction{}).
		Where("reason = ?", stock.ReasonInvoiceDeleteReversal).Count(&reversals).Error)
	assert.Equal(t, int64(2), reversals)

	require.ErrorIs(t, Delete(db, 1, inv.ID), ErrInvoiceNotFound)
}
