package report

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

type methods struct {
	cash, card, open, split models.PaymentMethod
}

func seedMethods(t *testing.T, db *gorm.DB) methods {
	t.Helper()
	m := methods{
		cash:  models.PaymentMethod{UserID: 1, Name: models.MethodNameCash},
		card:  models.PaymentMethod{UserID: 1, Name: models.MethodNameCard},
		open:  models.PaymentMethod{UserID: 1, Name: models.MethodNameOpenAccount},
		split: models.PaymentMethod{UserID: 1, Name: models.MethodNameSplit},
	}
	require.NoError(t, db.Create(&m.cash).Error)
	require.NoError(t, db.Create(&m.card).Error)
	require.NoError(t, db.Create(&m.open).Error)
	require.NoError(t, db.Create(&m.split).Error)
	return m
}

var (
	from = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC)
	mid  = time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
)

func completedSale(userID uint, methodID *uint, amount float64, date time.Time) models.Sale {
	return models.Sale{
		UserID: userID, Date: date, IsCompleted: true,
		PaymentMethodID: methodID, TotalAmount: amount,
	}
}

func TestSalesByBucket(t *testing.T) {
	db := setupTestDB(t)
	m := seedMethods(t, db)

	s1 := completedSale(1, &m.cash.ID, 100, mid)
	s2 := completedSale(1, &m.card.ID, 200, mid)
	s3 := completedSale(1, &m.open.ID, 300, mid)
	require.NoError(t, db.Create(&s1).Error)
	require.NoError(t, db.Create(&s2).Error)
	require.NoError(t, db.Create(&s3).Error)

	// Yöntemsiz kapanmış satış nakit sayılır.
	s4 := completedSale(1, nil, 50, mid)
	require.NoError(t, db.Create(&s4).Error)

	// Taslak ve pencere dışı satışlar rapora girmez.
	draft := models.Sale{UserID: 1, Date: mid, IsCompleted: false, TotalAmount: 999}
	require.NoError(t, db.Create(&draft).Error)
	outside := completedSale(1, &m.cash.ID, 777, from.AddDate(0, -1, 0))
	require.NoError(t, db.Create(&outside).Error)

	breakdown, err := SalesByBucket(db, 1, from, to)
	require.NoError(t, err)
	assert.Equal(t, 150.0, breakdown.Cash)
	assert.Equal(t, 200.0, breakdown.Card)
	assert.Equal(t, 300.0, breakdown.OpenAccount)
	assert.Equal(t, 650.0, breakdown.Total)
}

func TestSalesByBucketSplitSale(t *testing.T) {
	db := setupTestDB(t)
	m := seedMethods(t, db)

	cu := models.Customer{UserID: 1, Name: "Ali Can"}
	require.NoError(t, db.Create(&cu).Error)

	s := completedSale(1, &m.split.ID, 100, mid)
	s.CustomerID = &cu.ID
	require.NoError(t, db.Create(&s).Error)

	// 30 nakit + 50 kart + 20 açık hesap olarak tahsil edildi.
	require.NoError(t, db.Create(&models.Payment{
		UserID: 1, CustomerID: cu.ID, SaleID: &s.ID, Amount: 30, Date: mid,
		PaymentMethodID: &m.cash.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Payment{
		UserID: 1, CustomerID: cu.ID, SaleID: &s.ID, Amount: 50, Date: mid,
		PaymentMethodID: &m.card.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Payment{
		UserID: 1, CustomerID: cu.ID, SaleID: &s.ID, Amount: 20, Date: mid,
		PaymentMethodID: &m.open.ID,
	}).Error)

	breakdown, err := SalesByBucket(db, 1, from, to)
	require.NoError(t, err)
	assert.Equal(t, 30.0, breakdown.Cash)
	assert.Equal(t, 50.0, breakdown.Card)
	// Açık hesap kısmı kovalara dağıtılmaz, toplamda kalır.
	assert.Zero(t, breakdown.OpenAccount)
	assert.Equal(t, 100.0, breakdown.Total)
}

func TestGrossProfit(t *testing.T) {
	db := setupTestDB(t)
	m := seedMethods(t, db)

	s := completedSale(1, &m.cash.ID, 115, mid)
	require.NoError(t, db.Create(&s).Error)
	require.NoError(t, db.Create(&models.SaleLine{
		UserID: 1, SaleID: s.ID, ProductID: 1,
		Quantity: 2, UnitPrice: 60, CostPrice: 40, Discount: 5, Total: 120,
	}).Error)

	// Taslak satışın satırı kâra girmez.
	draft := models.Sale{UserID: 1, Date: mid, IsCompleted: false, TotalAmount: 60}
	require.NoError(t, db.Create(&draft).Error)
	require.NoError(t, db.Create(&models.SaleLine{
		UserID: 1, SaleID: draft.ID, ProductID: 1,
		Quantity: 1, UnitPrice: 60, CostPrice: 40, Total: 60,
	}).Error)

	profit, err := GrossProfit(db, 1, from, to)
	require.NoError(t, err)
	// (120 - 5) - 2*40 = 35
	assert.Equal(t, 35.0, profit)
}

func TestSummarize(t *testing.T) {
	db := setupTestDB(t)
	m := seedMethods(t, db)

	cu := models.Customer{UserID: 1, Name: "Zeynep Ak"}
	require.NoError(t, db.Create(&cu).Error)
	co := models.Company{UserID: 1, Name: "Tedarik A.Ş."}
	require.NoError(t, db.Create(&co).Error)

	s := completedSale(1, &m.cash.ID, 500, mid)
	require.NoError(t, db.Create(&s).Error)

	// Yöntemsiz gelir nakit sayılır.
	require.NoError(t, db.Create(&models.Income{
		UserID: 1, Amount: 80, Date: mid, Description: "kira geliri",
	}).Error)
	require.NoError(t, db.Create(&models.Expense{
		UserID: 1, Amount: 120, Date: mid, Description: "elektrik",
		PaymentMethodID: &m.cash.ID,
	}).Error)
	// Kartla ödenen gider toplama girer ama kasadan düşmez.
	require.NoError(t, db.Create(&models.Expense{
		UserID: 1, Amount: 60, Date: mid, Description: "yazılım",
		PaymentMethodID: &m.card.ID,
	}).Error)

	require.NoError(t, db.Create(&models.Payment{
		UserID: 1, CustomerID: cu.ID, Amount: 90, Date: mid,
		PaymentMethodID: &m.cash.ID,
	}).Error)
	require.NoError(t, db.Create(&models.CompanyTransaction{
		UserID: 1, CompanyID: co.ID, Type: models.CompanyTransactionPayment,
		Amount: 200, Date: mid, PaymentMethodID: &m.cash.ID,
	}).Error)
	// Borç tipli hareket ödeme toplamına girmez.
	require.NoError(t, db.Create(&models.CompanyTransaction{
		UserID: 1, CompanyID: co.ID, Type: models.CompanyTransactionDebt,
		Amount: 400, Date: mid,
	}).Error)

	// Nakit ödenen fatura kasadan düşer, vadeli (yöntemsiz) fatura düşmez.
	require.NoError(t, db.Create(&models.PurchaseInvoice{
		UserID: 1, CompanyID: co.ID, InvoiceNo: "FTR-020",
		InvoiceDate: mid, GrandTotal: 150, PaymentMethodID: &m.cash.ID,
	}).Error)
	require.NoError(t, db.Create(&models.PurchaseInvoice{
		UserID: 1, CompanyID: co.ID, InvoiceNo: "FTR-021",
		InvoiceDate: mid, GrandTotal: 999,
	}).Error)

	sum, err := Summarize(db, 1, from, to)
	require.NoError(t, err)

	assert.Equal(t, 500.0, sum.Sales.Cash)
	assert.Equal(t, 80.0, sum.TotalIncomes)
	assert.Equal(t, 180.0, sum.TotalExpenses)
	assert.Equal(t, 90.0, sum.TotalCustomerPayments)
	assert.Equal(t, 200.0, sum.TotalCompanyPayments)

	// Kasa: 500 + 80 + 90 - 200 - 120 - 150
	assert.Equal(t, 500.0, sum.Register.CashSales)
	assert.Equal(t, 80.0, sum.Register.CashIncomes)
	assert.Equal(t, 90.0, sum.Register.CashCustomerPayments)
	assert.Equal(t, 200.0, sum.Register.CashCompanyPayments)
	assert.Equal(t, 120.0, sum.Register.CashExpenses)
	assert.Equal(t, 150.0, sum.Register.CashInvoicePayments)
	assert.Equal(t, 200.0, sum.Register.Balance)

	// Ciro: 500 + 90 + 80 - 180
	assert.Equal(t, 490.0, sum.Revenue)
}
