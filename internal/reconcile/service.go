package reconcile

import (
	"errors"
	"sort"
	"time"

	"magaza-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("müşteri bulunamadı")
	ErrCompanyNotFound  = errors.New("firma bulunamadı")
)

// Ekstre kalem kategorileri. Aynı güne düşen kayıtlar kategori adına göre
// sıralanır ki ekstre deterministik olsun.
const (
	CategoryDebt    = "Borç"
	CategoryInvoice = "Fatura"
	CategoryPayment = "Ödeme"
	CategorySale    = "Satış"
)

type Entry struct {
	Date        time.Time
	Category    string
	Description string
	Amount      float64 // işaretli: borç/fatura +, ödeme -
	Method      string  // ödeme yöntemi adı (varsa)
	Balance     float64 // bu kalem sonrası yürüyen bakiye
}

type Statement struct {
	Entries      []Entry // pencere içi kalemler, en yeni önce
	TotalDebt    float64 // tüm geçmiş
	TotalPayment float64 // tüm geçmiş
	Balance      float64 // tüm geçmiş üzerinden güncel bakiye
}

// buildStatement - Yürüyen bakiye her zaman pencereden bağımsız, tüm geçmiş
// üzerinden hesaplanır; tarih filtresi ancak bakiyeler atandıktan sonra
// uygulanır. Pencere üzerinden hesaplamak bakiyeyi yanlış üretir.
func buildStatement(entries []Entry, from, to *time.Time) *Statement {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Category < entries[j].Category
	})

	st := &Statement{}
	var balance float64
	for i := range entries {
		balance += entries[i].Amount
		entries[i].Balance = balance
		if entries[i].Amount >= 0 {
			st.TotalDebt += entries[i].Amount
		} else {
			st.TotalPayment += -entries[i].Amount
		}
	}
	st.Balance = balance

	// Pencere filtresi sadece gösterilen listeye uygulanır.
	windowed := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		windowed = append(windowed, e)
	}

	// Gösterim en yeni önce.
	for i, j := 0, len(windowed)-1; i < j; i, j = i+1, j-1 {
		windowed[i], windowed[j] = windowed[j], windowed[i]
	}
	st.Entries = windowed
	return st
}

// CustomerStatement - Müşterinin borçlarını, ödemelerini ve açık hesap
// satışlarını tek kronolojik ekstrede birleştirir.
func CustomerStatement(db *gorm.DB, userID, customerID uint, from, to *time.Time) (*Statement, error) {
	var count int64
	if err := db.Model(&models.Customer{}).
		Where("id = ? AND user_id = ?", customerID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCustomerNotFound
	}

	var entries []Entry

	var debts []models.Debt
	if err := db.Where("user_id = ? AND customer_id = ?", userID, customerID).
		Find(&debts).Error; err != nil {
		return nil, err
	}
	for _, d := range debts {
		entries = append(entries, Entry{
			Date:        d.Date,
			Category:    CategoryDebt,
			Description: d.Description,
			Amount:      d.Amount,
		})
	}

	var payments []models.Payment
	if err := db.Preload("PaymentMethod").
		Where("user_id = ? AND customer_id = ?", userID, customerID).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	for _, p := range payments {
		method := ""
		if p.PaymentMethod != nil {
			method = p.PaymentMethod.Name
		}
		entries = append(entries, Entry{
			Date:        p.Date,
			Category:    CategoryPayment,
			Description: p.Description,
			Amount:      -p.Amount,
			Method:      method,
		})
	}

	// Açık hesap satışlar bakiyeye borç olarak işler; nakit/kart satışlar
	// zaten peşin kapandığı için ekstreye girmez.
	var sales []models.Sale
	if err := db.Preload("PaymentMethod").
		Where("user_id = ? AND customer_id = ? AND is_completed = ?", userID, customerID, true).
		Find(&sales).Error; err != nil {
		return nil, err
	}
	for _, s := range sales {
		if s.PaymentMethod == nil {
			continue
		}
		if models.ResolveBucket(s.PaymentMethod.Name) != models.BucketOpenAccount {
			continue
		}
		entries = append(entries, Entry{
			Date:     s.Date,
			Category: CategorySale,
			Amount:   s.TotalAmount,
			Method:   s.PaymentMethod.Name,
		})
	}

	return buildStatement(entries, from, to), nil
}

// CompanyStatement - Firma cari hareketleri ile alış faturalarını birleştirir.
// Borç tipli hareketler ve faturalar bakiyeyi artırır, ödemeler azaltır.
func CompanyStatement(db *gorm.DB, userID, companyID uint, from, to *time.Time) (*Statement, error) {
	var count int64
	if err := db.Model(&models.Company{}).
		Where("id = ? AND user_id = ?", companyID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCompanyNotFound
	}

	var entries []Entry

	var transactions []models.CompanyTransaction
	if err := db.Preload("PaymentMethod").
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	for _, t := range transactions {
		amount := t.Amount
		category := CategoryDebt
		if t.Type == models.CompanyTransactionPayment {
			amount = -t.Amount
			category = CategoryPayment
		}
		method := ""
		if t.PaymentMethod != nil {
			method = t.PaymentMethod.Name
		}
		entries = append(entries, Entry{
			Date:        t.Date,
			Category:    category,
			Description: t.Description,
			Amount:      amount,
			Method:      method,
		})
	}

	var invoices []models.PurchaseInvoice
	if err := db.Where("user_id = ? AND company_id = ?", userID, companyID).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		entries = append(entries, Entry{
			Date:        inv.InvoiceDate,
			Category:    CategoryInvoice,
			Description: inv.InvoiceNo,
			Amount:      inv.GrandTotal,
		})
	}

	return buildStatement(entries, from, to), nil
}
