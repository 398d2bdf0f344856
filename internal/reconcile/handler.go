package reconcile

import (
	"errors"
	"fmt"
	"time"

	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"
	"magaza-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EntryResponse struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method,omitempty"`
	Balance     float64 `json:"balance"`
}

type StatementResponse struct {
	Entries      []EntryResponse `json:"entries"`
	TotalDebt    float64         `json:"total_debt"`
	TotalPayment float64         `json:"total_payment"`
	Balance      float64         `json:"balance"`
	// Müşteri ekstresinde denormalize bakiye ile karşılaştırma için:
	CachedBalance *float64 `json:"cached_balance,omitempty"`
}

func parseWindow(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		d, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
		}
		from = &d
	}
	if toStr := c.Query("to"); toStr != "" {
		d, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
		}
		to = &d
	}
	return from, to, nil
}

func toStatementResponse(st *Statement) StatementResponse {
	resp := StatementResponse{
		Entries:      make([]EntryResponse, 0, len(st.Entries)),
		TotalDebt:    st.TotalDebt,
		TotalPayment: st.TotalPayment,
		Balance:      st.Balance,
	}
	for _, e := range st.Entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			Date:        e.Date.Format("2006-01-02"),
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
			Method:      e.Method,
			Balance:     e.Balance,
		})
	}
	return resp
}

// GET /api/customers/:id/statement?from=...&to=...
func CustomerStatementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var customerID uint
		if _, err := fmt.Sscan(c.Params("id"), &customerID); err != nil || customerID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri id geçersiz")
		}

		from, to, err := parseWindow(c)
		if err != nil {
			return err
		}

		st, err := CustomerStatement(database.DB, userID, customerID, from, to)
		if err != nil {
			if errors.Is(err, ErrCustomerNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ekstre hesaplanamadı")
		}

		resp := toStatementResponse(st)

		// Önbellek bakiye ile türetilen bakiyeyi yan yana göster; fark
		// veri tutarsızlığı demektir.
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ? AND user_id = ?", customerID, userID).Error; err == nil {
			resp.CachedBalance = &customer.Balance
		}

		return c.JSON(resp)
	}
}

// GET /api/companies/:id/statement?from=...&to=...
func CompanyStatementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var companyID uint
		if _, err := fmt.Sscan(c.Params("id"), &companyID); err != nil || companyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Firma id geçersiz")
		}

		from, to, err := parseWindow(c)
		if err != nil {
			return err
		}

		st, err := CompanyStatement(database.DB, userID, companyID, from, to)
		if err != nil {
			if errors.Is(err, ErrCompanyNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ekstre hesaplanamadı")
		}

		return c.JSON(toStatementResponse(st))
	}
}
