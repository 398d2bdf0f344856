package stock

import (
	"testing"
	"time"

	"magaza-backend/internal/database"
	"magaza-backend/internal/models"

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

func createProduct(t *testing.T, db *gorm.DB, userID uint, name string, qty float64) models.Product {
	t.Helper()
	p := models.Product{UserID: userID, Name: name, Quantity: qty, PurchasePrice: 10, SalePrice: 15}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestAdjust(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, 1, "Süt 1L", 10)
	now := time.Now()

	t.Run("giriş stoğu artırır ve hareket yazar", func(t *testing.T) {
		balance, err := Adjust(db, 1, p.ID, 5, ReasonPurchaseInvoice, now)
		require.NoError(t, err)
		assert.Equal(t, 15.0, balance)

		var record models.StockTransaction
		require.NoError(t, db.Last(&record).Error)
		assert.Equal(t, 5.0, record.QuantityChange)
		assert.Equal(t, models.StockDirectionIn, record.Direction)
		assert.Equal(t, ReasonPurchaseInvoice, record.Reason)
		assert.Equal(t, 15.0, record.BalanceAfter)
	})

	t.Run("çıkış stoğu azaltır", func(t *testing.T) {
		balance, err := Adjust(db, 1, p.ID, -12, SaleReason(7), now)
		require.NoError(t, err)
		assert.Equal(t, 3.0, balance)

		var record models.StockTransaction
		require.NoError(t, db.Last(&record).Error)
		assert.Equal(t, models.StockDirectionOut, record.Direction)
		assert.Equal(t, "sale:7", record.Reason)
		assert.Equal(t, 3.0, record.BalanceAfter)
	})

	t.Run("negatife düşecek çıkış reddedilir", func(t *testing.T) {
		_, err := Adjust(db, 1, p.ID, -4, SaleReason(8), now)
		require.ErrorIs(t, err, ErrInsufficientStock)

		var product models.Product
		require.NoError(t, db.First(&product, p.ID).Error)
		assert.Equal(t, 3.0, product.Quantity, "reddedilen hareket miktarı değiştirmemeli")

		var count int64
		require.NoError(t, db.Model(&models.StockTransaction{}).
			Where("reason = ?", "sale:8").Count(&count).Error)
		assert.Zero(t, count, "reddedilen hareket deftere yazılmamalı")
	})

	t.Run("bilinmeyen ürün", func(t *testing.T) {
		_, err := Adjust(db, 1, 9999, 1, ReasonPurchaseInvoice, now)
		require.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("başka kullanıcının ürünü görünmez", func(t *testing.T) {
		_, err := Adjust(db, 2, p.ID, 1, ReasonPurchaseInvoice, now)
		require.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestAdjustBalanceAfterRunningSum(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, 1, "Makarna", 0)
	now := time.Now()

	deltas := []float64{10, -3, 7, -14}
	for _, d := range deltas {
		_, err := Adjust(db, 1, p.ID, d, ReasonPurchaseInvoice, now)
		require.NoError(t, err)
	}

	var records []models.StockTransaction
	require.NoError(t, db.Where("product_id = ?", p.ID).Order("id asc").Find(&records).Error)
	require.Len(t, records, len(deltas))

	var running float64
	for i, r := range records {
		running += r.QuantityChange
		assert.Equal(t, running, r.BalanceAfter, "kayıt %d", i)
	}

	var product models.Product
	require.NoError(t, db.First(&product, p.ID).Error)
	assert.Equal(t, running, product.Quantity)
}

func TestHistory(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, 1, "Çay", 100)

	d1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := Adjust(db, 1, p.ID, 5, ReasonPurchaseInvoice, d1)
	require.NoError(t, err)
	_, err = Adjust(db, 1, p.ID, -2, SaleReason(1), d2)
	require.NoError(t, err)

	records, err := History(db, 1, p.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, -2.0, records[0].QuantityChange, "en yeni hareket önce gelmeli")
	assert.Equal(t, 5.0, records[1].QuantityChange)

	_, err = History(db, 1, 9999)
	require.ErrorIs(t, err, ErrProductNotFound)
}
