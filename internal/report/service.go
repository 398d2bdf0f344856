package report

import (
	"time"

	"magaza-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesBreakdown - Tamamlanmış satışların tahsilat kanallarına dağılımı.
// Total satış tutarlarının toplamıdır; parçalı satışın açık hesap kısmı
// kovalardan düştüğü için kova toplamı Total'den küçük kalabilir.
type SalesBreakdown struct {
	Cash        float64 `json:"cash"`
	Card        float64 `json:"card"`
	OpenAccount float64 `json:"open_account"`
	Total       float64 `json:"total"`
}

// CashRegister - Kasa hareketi: nakit girenler eksi nakit çıkanlar.
type CashRegister struct {
	CashSales            float64 `json:"cash_sales"`
	CashIncomes          float64 `json:"cash_incomes"`
	CashCustomerPayments float64 `json:"cash_customer_payments"`
	CashCompanyPayments  float64 `json:"cash_company_payments"`
	CashExpenses         float64 `json:"cash_expenses"`
	CashInvoicePayments  float64 `json:"cash_invoice_payments"`
	Balance              float64 `json:"balance"`
}

// Summary - Dönem raporu. Hiçbir alan persist edilmez, her istekte ham
// kayıtlardan yeniden hesaplanır.
type Summary struct {
	From                  time.Time      `json:"-"`
	To                    time.Time      `json:"-"`
	Sales                 SalesBreakdown `json:"sales"`
	TotalIncomes          float64        `json:"total_incomes"`
	TotalExpenses         float64        `json:"total_expenses"`
	TotalCustomerPayments float64        `json:"total_customer_payments"`
	TotalCompanyPayments  float64        `json:"total_company_payments"`
	GrossProfit           float64        `json:"gross_profit"`
	Register              CashRegister   `json:"register"`
	Revenue               float64        `json:"revenue"`
}

func methodName(m *models.PaymentMethod) string {
	if m == nil {
		return ""
	}
	return m.Name
}

// SalesByBucket - Tamamlanmış satışları kanallara dağıtır. Tek yöntemli satış
// doğrudan kovasına yazılır; parçalı satış bağlı kısmi ödemeleri üzerinden
// çözülür. Açık hesap kısmi ödemeler kovalara girmez (eski davranış korunur).
func SalesByBucket(db *gorm.DB, userID uint, from, to time.Time) (SalesBreakdown, error) {
	var breakdown SalesBreakdown

	var sales []models.Sale
	err := db.Preload("PaymentMethod").
		Where("user_id = ? AND is_completed = ? AND date >= ? AND date <= ?", userID, true, from, to).
		Find(&sales).Error
	if err != nil {
		return breakdown, err
	}

	for _, s := range sales {
		breakdown.Total += s.TotalAmount
		name := methodName(s.PaymentMethod)

		if models.IsSplitMethod(name) {
			var payments []models.Payment
			err := db.Preload("PaymentMethod").
				Where("user_id = ? AND sale_id = ?", userID, s.ID).
				Find(&payments).Error
			if err != nil {
				return breakdown, err
			}
			for _, p := range payments {
				switch models.ResolveBucket(methodName(p.PaymentMethod)) {
				case models.BucketCash:
					breakdown.Cash += p.Amount
				case models.BucketCard:
					breakdown.Card += p.Amount
				case models.BucketOpenAccount:
					// kovalara dağıtılmaz
				}
			}
			continue
		}

		switch models.ResolveBucket(name) {
		case models.BucketCash:
			breakdown.Cash += s.TotalAmount
		case models.BucketCard:
			breakdown.Card += s.TotalAmount
		case models.BucketOpenAccount:
			breakdown.OpenAccount += s.TotalAmount
		}
	}

	return breakdown, nil
}

// GrossProfit - Dönemde satılan her satır için (tutar - indirim) eksi
// maliyet. Maliyet satıra satış anında sabitlenen alış fiyatıdır; güncel
// fiyattan yeniden hesaplanmaz.
func GrossProfit(db *gorm.DB, userID uint, from, to time.Time) (float64, error) {
	var lines []models.SaleLine
	err := db.Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Where("sale_lines.user_id = ? AND sales.is_completed = ? AND sales.date >= ? AND sales.date <= ?",
			userID, true, from, to).
		Find(&lines).Error
	if err != nil {
		return 0, err
	}

	profit := decimal.Zero
	for _, l := range lines {
		net := decimal.NewFromFloat(l.Total).Sub(decimal.NewFromFloat(l.Discount))
		cost := decimal.NewFromFloat(l.CostPrice).Mul(decimal.NewFromFloat(l.Quantity))
		profit = profit.Add(net.Sub(cost))
	}
	return profit.Round(2).InexactFloat64(), nil
}

// isCash - Yöntemi olmayan kayıtlar nakit sayılır (tanınmayan -> nakit
// kuralıyla tutarlı).
func isCash(m *models.PaymentMethod) bool {
	return models.ResolveBucket(methodName(m)) == models.BucketCash
}

// Summarize - Dönemin tüm türetilmiş görünümlerini tek seferde hesaplar:
// satış dağılımı, kasa bakiyesi, brüt kâr ve ciro özeti.
func Summarize(db *gorm.DB, userID uint, from, to time.Time) (*Summary, error) {
	s := &Summary{From: from, To: to}

	var err error
	if s.Sales, err = SalesByBucket(db, userID, from, to); err != nil {
		return nil, err
	}
	if s.GrossProfit, err = GrossProfit(db, userID, from, to); err != nil {
		return nil, err
	}

	window := func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to)
	}

	var incomes []models.Income
	if err := window(db.Preload("PaymentMethod")).Find(&incomes).Error; err != nil {
		return nil, err
	}
	var expenses []models.Expense
	if err := window(db.Preload("PaymentMethod")).Find(&expenses).Error; err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := window(db.Preload("PaymentMethod")).Find(&payments).Error; err != nil {
		return nil, err
	}
	var companyPayments []models.CompanyTransaction
	if err := window(db.Preload("PaymentMethod")).
		Where("type = ?", models.CompanyTransactionPayment).
		Find(&companyPayments).Error; err != nil {
		return nil, err
	}
	var invoices []models.PurchaseInvoice
	if err := db.Preload("PaymentMethod").
		Where("user_id = ? AND invoice_date >= ? AND invoice_date <= ?", userID, from, to).
		Find(&invoices).Error; err != nil {
		return nil, err
	}

	s.Register.CashSales = s.Sales.Cash

	for _, i := range incomes {
		s.TotalIncomes += i.Amount
		if isCash(i.PaymentMethod) {
			s.Register.CashIncomes += i.Amount
		}
	}
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
		if isCash(e.PaymentMethod) {
			s.Register.CashExpenses += e.Amount
		}
	}
	for _, p := range payments {
		s.TotalCustomerPayments += p.Amount
		if isCash(p.PaymentMethod) {
			s.Register.CashCustomerPayments += p.Amount
		}
	}
	for _, t := range companyPayments {
		s.TotalCompanyPayments += t.Amount
		if isCash(t.PaymentMethod) {
			s.Register.CashCompanyPayments += t.Amount
		}
	}

	// Yöntemsiz fatura vadeli alımdır, kasadan nakit çıkmaz.
	for _, inv := range invoices {
		if inv.PaymentMethod == nil {
			continue
		}
		if models.ResolveBucket(inv.PaymentMethod.Name) == models.BucketCash {
			s.Register.CashInvoicePayments += inv.GrandTotal
		}
	}

	s.Register.Balance = s.Register.CashSales + s.Register.CashIncomes + s.Register.CashCustomerPayments -
		s.Register.CashCompanyPayments - s.Register.CashExpenses - s.Register.CashInvoicePayments

	s.Revenue = s.Sales.Total + s.TotalCustomerPayments + s.TotalIncomes - s.TotalExpenses

	return s, nil
}
