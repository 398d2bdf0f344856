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

type CompanyTransactionRequest struct {
	CompanyID       uint    `json:"company_id"`
	Type            string  `json:"type"` // "borc" | "odeme"
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	PaymentMethodID *uint   `json:"payment_method_id"`
}

type CompanyTransactionResponse struct {
	ID              uint    `json:"id"`
	CompanyID       uint    `json:"company_id"`
	CompanyName     string  `json:"company_name,omitempty"`
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	PaymentMethodID *uint   `json:"payment_method_id,omitempty"`
}

func toCompanyTransactionResponse(t models.CompanyTransaction) CompanyTransactionResponse {
	return CompanyTransactionResponse{
		ID:              t.ID,
		CompanyID:       t.CompanyID,
		CompanyName:     t.Company.Name,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Date:            t.Date.Format("2006-01-02"),
		Description:     t.Description,
		PaymentMethodID: t.PaymentMethodID,
	}
}

// POST /api/company-transactions
func CreateCompanyTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var body CompanyTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "company_id zorunlu")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar pozitif olmalı")
		}

		txType := models.CompanyTransactionType(body.Type)
		if txType != models.CompanyTransactionDebt && txType != models.CompanyTransactionPayment {
			return fiber.NewError(fiber.StatusBadRequest, "İşlem tipi 'borc' veya 'odeme' olmalı")
		}

		date, err := parseDate(body.Date)
		if err != nil {
			return err
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ? AND user_id = ?", body.CompanyID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
		}

		if body.PaymentMethodID != nil {
			var method models.PaymentMethod
			if err := database.DB.First(&method, "id = ? AND user_id = ?", *body.PaymentMethodID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Ödeme yöntemi bulunamadı")
			}
		}

		t := models.CompanyTransaction{
			UserID:          userID,
			CompanyID:       body.CompanyID,
			Company:         company,
			Type:            txType,
			Amount:          body.Amount,
			Date:            date,
			Description:     strings.TrimSpace(body.Description),
			PaymentMethodID: body.PaymentMethodID,
		}
		if err := database.DB.Omit("Company").Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma işlemi oluşturulamadı")
		}

		action := "Firmaya borç"
		if txType == models.CompanyTransactionPayment {
			action = "Firmaya ödeme"
		}
		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "company_transaction",
			EntityID:    t.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s: %s - %.2f TL", action, company.Name, t.Amount),
			After:       toCompanyTransactionResponse(t),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toCompanyTransactionResponse(t))
	}
}

// GET /api/company-transactions?company_id=...&from=...&to=...
func ListCompanyTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		q := database.DB.Preload("Company").Where("user_id = ?", userID)
		if cid := c.QueryInt("company_id"); cid > 0 {
			q = q.Where("company_id = ?", cid)
		}
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

		var items []models.CompanyTransaction
		if err := q.Order("date desc, id desc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma işlemleri listelenemedi")
		}

		res := make([]CompanyTransactionResponse, 0, len(items))
		for _, t := range items {
			res = append(res, toCompanyTransactionResponse(t))
		}
		return c.JSON(res)
	}
}
