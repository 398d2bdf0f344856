package finance

import (
	"fmt"
	"strings"
	"time"

	"magaza-backend/internal/audit"
	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"
	"magaza-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CashEntryRequest struct {
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	PaymentMethodID *uint   `json:"payment_method_id"`
}

type CashEntryResponse struct {
	ID              uint    `json:"id"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	PaymentMethodID *uint   `json:"payment_method_id,omitempty"`
}

func validateCashEntry(c *fiber.Ctx) (CashEntryRequest, time.Time, error) {
	var body CashEntryRequest
	if err := c.BodyParser(&body); err != nil {
		return body, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}
	if body.Amount <= 0 {
		return body, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tutar pozitif olmalı")
	}
	body.Description = strings.TrimSpace(body.Description)
	if body.Description == "" {
		return body, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Açıklama zorunlu")
	}

	date, err := parseDate(body.Date)
	if err != nil {
		return body, time.Time{}, err
	}
	return body, date, nil
}

// POST /api/incomes
func CreateIncomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		body, date, err := validateCashEntry(c)
		if err != nil {
			return err
		}

		income := models.Income{
			UserID:          userID,
			Amount:          body.Amount,
			Date:            date,
			Description:     body.Description,
			PaymentMethodID: body.PaymentMethodID,
		}
		if err := database.DB.Create(&income).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gelir oluşturulamadı")
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "income",
			EntityID:    income.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Gelir eklendi: %s - %.2f TL", income.Description, income.Amount),
			After:       income,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(CashEntryResponse{
			ID:              income.ID,
			Amount:          income.Amount,
			Date:            income.Date.Format("2006-01-02"),
			Description:     income.Description,
			PaymentMethodID: income.PaymentMethodID,
		})
	}
}

// GET /api/incomes?from=...&to=...
func ListIncomesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		q := database.DB.Where("user_id = ?", userID)
		if from := c.Query("from"); from != "" {
			d, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			q = q.Where("date >= ?", d)
		}
		if to := c.Query("to"); to != "" {
			d, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			q = q.Where("date <= ?", d.Add(24*time.Hour-time.Second))
		}

		var incomes []models.Income
		if err := q.Order("date desc, id desc").Find(&incomes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gelirler listelenemedi")
		}

		res := make([]CashEntryResponse, 0, len(incomes))
		for _, in := range incomes {
			res = append(res, CashEntryResponse{
				ID:              in.ID,
				Amount:          in.Amount,
				Date:            in.Date.Format("2006-01-02"),
				Description:     in.Description,
				PaymentMethodID: in.PaymentMethodID,
			})
		}
		return c.JSON(res)
	}
}

// DELETE /api/incomes/:id (sadece admin)
func DeleteIncomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var income models.Income
		if err := database.DB.First(&income, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gelir bulunamadı")
		}

		if err := database.DB.Delete(&income).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gelir silinemedi")
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "income",
			EntityID:    income.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Gelir silindi: %s - %.2f TL", income.Description, income.Amount),
			Before:      income,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(fiber.Map{"message": "Gelir silindi"})
	}
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		body, date, err := validateCashEntry(c)
		if err != nil {
			return err
		}

		expense := models.Expense{
			UserID:          userID,
			Amount:          body.Amount,
			Date:            date,
			Description:     body.Description,
			PaymentMethodID: body.PaymentMethodID,
		}
		if err := database.DB.Create(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider oluşturulamadı")
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "expense",
			EntityID:    expense.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Gider eklendi: %s - %.2f TL", expense.Description, expense.Amount),
			After:       expense,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(CashEntryResponse{
			ID:              expense.ID,
			Amount:          expense.Amount,
			Date:            expense.Date.Format("2006-01-02"),
			Description:     expense.Description,
			PaymentMethodID: expense.PaymentMethodID,
		})
	}
}

// GET /api/expenses?from=...&to=...
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		q := database.DB.Where("user_id = ?", userID)
		if from := c.Query("from"); from != "" {
			d, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			q = q.Where("date >= ?", d)
		}
		if to := c.Query("to"); to != "" {
			d, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			q = q.Where("date <= ?", d.Add(24*time.Hour-time.Second))
		}

		var expenses []models.Expense
		if err := q.Order("date desc, id desc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giderler listelenemedi")
		}

		res := make([]CashEntryResponse, 0, len(expenses))
		for _, ex := range expenses {
			res = append(res, CashEntryResponse{
				ID:              ex.ID,
				Amount:          ex.Amount,
				Date:            ex.Date.Format("2006-01-02"),
				Description:     ex.Description,
				PaymentMethodID: ex.PaymentMethodID,
			})
		}
		return c.JSON(res)
	}
}

// DELETE /api/expenses/:id (sadece admin)
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var expense models.Expense
		if err := database.DB.First(&expense, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		if err := database.DB.Delete(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider silinemedi")
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "expense",
			EntityID:    expense.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Gider silindi: %s - %.2f TL", expense.Description, expense.Amount),
			Before:      expense,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(fiber.Map{"message": "Gider silindi"})
	}
}
