package reconcile

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

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestCustomerStatement(t *testing.T) {
	db := setupTestDB(t)
	cu := models.Customer{UserID: 1, Name: "Ayşe Yılmaz"}
	require.NoError(t, db.Create(&cu).Error)

	require.NoError(t, db.Create(&models.Debt{
		UserID: 1, CustomerID: cu.ID, Amount: 100, Date: day(1), Description: "veresiye",
	}).Error)
	require.NoError(t, db.Create(&models.Payment{
		UserID: 1, CustomerID: cu.ID, Amount: 40, Date: day(2),
	}).Error)
	require.NoError(t, db.Create(&models.Debt{
		UserID: 1, CustomerID: cu.ID, Amount: 30, Date: day(3),
	}).Error)

	t.Run("tüm geçmiş", func(t *testing.T) {
		st, err := CustomerStatement(db, 1, cu.ID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 130.0, st.TotalDebt)
		assert.Equal(t, 40.0, st.TotalPayment)
		assert.Equal(t, 90.0, st.Balance)

		require.Len(t, st.Entries, 3)
		// En yeni önce; yürüyen bakiye kronolojik birikir.
		assert.Equal(t, 90.0, st.Entries[0].Balance)
		assert.Equal(t, 60.0, st.Entries[1].Balance)
		assert.Equal(t, 100.0, st.Entries[2].Balance)
	})

	t.Run("pencere bakiyeyi değiştirmez", func(t *testing.T) {
		from, to := day(2), day(3)
		st, err := CustomerStatement(db, 1, cu.ID, &from, &to)
		require.NoError(t, err)

		// Toplamlar ve bakiyeler pencereden bağımsız, tüm geçmişten gelir.
		assert.Equal(t, 90.0, st.Balance)
		assert.Equal(t, 130.0, st.TotalDebt)

		require.Len(t, st.Entries, 2)
		assert.Equal(t, 90.0, st.Entries[0].Balance)
		assert.Equal(t, 60.0, st.Entries[1].Balance)
	})

	t.Run("açık hesap satış borca işler, nakit satış girmez", func(t *testing.T) {
		open := models.PaymentMethod{UserID: 1, Name: models.MethodNameOpenAccount}
		cash := models.PaymentMethod{UserID: 1, Name: models.MethodNameCash}
		require.NoError(t, db.Create(&open).Error)
		require.NoError(t, db.Create(&cash).Error)

		require.NoError(t, db.Create(&models.Sale{
			UserID: 1, CustomerID: &cu.ID, Date: day(4), IsCompleted: true,
			PaymentMethodID: &open.ID, TotalAmount: 50,
		}).Error)
		require.NoError(t, db.Create(&models.Sale{
			UserID: 1, CustomerID: &cu.ID, Date: day(5), IsCompleted: true,
			PaymentMethodID: &cash.ID, TotalAmount: 999,
		}).Error)
		// Taslak satış da ekstreye girmez.
		require.NoError(t, db.Create(&models.Sale{
			UserID: 1, CustomerID: &cu.ID, Date: day(6), IsCompleted: false,
			TotalAmount: 888,
		}).Error)

		st, err := CustomerStatement(db, 1, cu.ID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 140.0, st.Balance) // 90 + 50
		require.Len(t, st.Entries, 4)
		assert.Equal(t, CategorySale, st.Entries[0].Category)
	})

	t.Run("bilinmeyen müşteri", func(t *testing.T) {
		_, err := CustomerStatement(db, 1, 9999, nil, nil)
		require.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerStatementMatchesCachedBalance(t *testing.T) {
	db := setupTestDB(t)
	// Önbellek bakiyesi handler'lardaki artış/azalışla senkron tutulur;
	// burada aynı senaryoyu elle kurup iki yolun eşitliğini doğruluyoruz.
	cu := models.Customer{UserID: 1, Name: "Mehmet Demir", Balance: 75}
	require.NoError(t, db.Create(&cu).Error)

	require.NoError(t, db.Create(&models.Debt{
		UserID: 1, CustomerID: cu.ID, Amount: 100, Date: day(1),
	}).Error)
	require.NoError(t, db.Create(&models.Payment{
		UserID: 1, CustomerID: cu.ID, Amount: 25, Date: day(2),
	}).Error)

	st, err := CustomerStatement(db, 1, cu.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, cu.Balance, st.Balance, "türetilmiş bakiye önbellekle eşleşmeli")
}

func TestCompanyStatement(t *testing.T) {
	db := setupTestDB(t)
	co := models.Company{UserID: 1, Name: "Gıda Toptan Ltd."}
	require.NoError(t, db.Create(&co).Error)

	require.NoError(t, db.Create(&models.CompanyTransaction{
		UserID: 1, CompanyID: co.ID, Type: models.CompanyTransactionDebt,
		Amount: 500, Date: day(1),
	}).Error)
	require.NoError(t, db.Create(&models.CompanyTransaction{
		UserID: 1, CompanyID: co.ID, Type: models.CompanyTransactionPayment,
		Amount: 200, Date: day(2),
	}).Error)
	require.NoError(t, db.Create(&models.PurchaseInvoice{
		UserID: 1, CompanyID: co.ID, InvoiceNo: "FTR-010",
		InvoiceDate: day(3), GrandTotal: 150,
	}).Error)

	st, err := CompanyStatement(db, 1, co.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 650.0, st.TotalDebt) // 500 borç + 150 fatura
	assert.Equal(t, 200.0, st.TotalPayment)
	assert.Equal(t, 450.0, st.Balance)

	require.Len(t, st.Entries, 3)
	assert.Equal(t, CategoryInvoice, st.Entries[0].Category)
	assert.Equal(t, 450.0, st.Entries[0].Balance)
	assert.Equal(t, 300.0, st.Entries[1].Balance)
	assert.Equal(t, 500.0, st.Entries[2].Balance)

	_, err = CompanyStatement(db, 1, 9999, nil, nil)
	require.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestStatementSameDayOrdering(t *testing.T) {
	db := setupTestDB(t)
	cu := models.Customer{UserID: 1, Name: "Fatma Kaya"}
	require.NoError(t, db.Create(&cu).Error)

	// Aynı güne düşen kayıtlar kategori adına göre sıralanır: Borç < Ödeme.
	require.NoError(t, db.Create(&models.Payment{
		UserID: 1, CustomerID: cu.ID, Amount: 20, Date: day(1),
	}).Error)
	require.NoError(t, db.Create(&models.Debt{
		UserID: 1, CustomerID: cu.ID, Amount: 50, Date: day(1),
	}).Error)

	st, err := CustomerStatement(db, 1, cu.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, st.Entries, 2)
	assert.Equal(t, CategoryPayment, st.Entries[0].Category)
	assert.Equal(t, 30.0, st.Entries[0].Balance)
	assert.Equal(t, CategoryDebt, st.Entries[1].Category)
	assert.Equal(t, 50.0, st.Entries[1].Balance)
}
