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
	"gorm.io/gorm"
)

type DebtRequest struct {
	CustomerID  uint    `json:"customer_id"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type DebtResponse struct {
	ID           uint    `json:"id"`
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	Description  string  `json:"description"`
}

func toDebtResponse(d models.Debt) DebtResponse {
	return DebtResponse{
		ID:           d.ID,
		CustomerID:   d.CustomerID,
		CustomerName: d.Customer.Name,
		Amount:       d.Amount,
		Date:         d.Date.Format("2006-01-02"),
		Description:  d.Description,
	}
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}
	return d, nil
}

// POST /api/debts
//
// Borç kaydı ile müşteri bakiyesi aynı transaction içinde güncellenir.
func CreateDebtHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var body DebtRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.CustomerID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "customer_id zorunlu")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar pozitif olmalı")
		}

		date, err := parseDate(body.Date)
		if err != nil {
			return err
		}

		debt := models.Debt{
			UserID:      userID,
			CustomerID:  body.CustomerID,
			Amount:      body.Amount,
			Date:        date,
			Description: strings.TrimSpace(body.Description),
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.First(&customer, "id = ? AND user_id = ?", body.CustomerID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
			}

			if err := tx.Create(&debt).Error; err != nil {
				return fmt.Errorf("borç kaydedilemedi: %w", err)
			}

			if err := tx.Model(&customer).
				Update("balance", gorm.Expr("balance + ?", body.Amount)).Error; err != nil {
				return fmt.Errorf("bakiye güncellenemedi: %w", err)
			}

			debt.Customer = customer
			return nil
		})
		if txErr != nil {
			if fe, ok := txErr.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Borç oluşturulamadı")
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "debt",
			EntityID:    debt.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Borç eklendi: %s - %.2f TL", debt.Customer.Name, debt.Amount),
			After:       toDebtResponse(debt),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toDebtResponse(debt))
	}
}

// GET /api/debts?customer_id=...&from=...&to=...
func ListDebtsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		q := database.DB.Preload("Customer").Where("user_id = ?", userID)
		if cid := c.QueryInt("customer_id"); cid > 0 {
			q = q.Where("customer_id = ?", cid)
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

		var debts []models.Debt
		if err := q.Order("date desc, id desc").Find(&debts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Borçlar listelenemedi")
		}

		res := make([]DebtResponse, 0, len(debts))
		for _, d := range debts {
			res = append(res, toDebtResponse(d))
		}
		return c.JSON(res)
	}
}
