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

type PaymentRequest struct {
	CustomerID      uint    `json:"customer_id"`
	SaleID          *uint   `json:"sale_id"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	PaymentMethodID *uint   `json:"payment_method_id"`
}

type PaymentResponse struct {
	ID              uint    `json:"id"`
	CustomerID      uint    `json:"customer_id"`
	CustomerName    string  `json:"customer_name,omitempty"`
	SaleID          *uint   `json:"sale_id,omitempty"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	PaymentMethodID *uint   `json:"payment_method_id,omitempty"`
}

func toPaymentResponse(p models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		CustomerID:      p.CustomerID,
		CustomerName:    p.Customer.Name,
		SaleID:          p.SaleID,
		Amount:          p.Amount,
		Date:            p.Date.Format("2006-01-02"),
		Description:     p.Description,
		PaymentMethodID: p.PaymentMethodID,
	}
}

// POST /api/payments
//
// Ödeme kaydı ile müşteri bakiyesi aynı transaction içinde düşülür.
// sale_id verilirse ödeme parçalı satışın kısmi tahsilatı olarak bağlanır.
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var body PaymentRequest
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

		payment := models.Payment{
			UserID:          userID,
			CustomerID:      body.CustomerID,
			SaleID:          body.SaleID,
			Amount:          body.Amount,
			Date:            date,
			Description:     strings.TrimSpace(body.Description),
			PaymentMethodID: body.PaymentMethodID,
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.First(&customer, "id = ? AND user_id = ?", body.CustomerID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
			}

			if body.SaleID != nil {
				var sale models.Sale
				if err := tx.First(&sale, "id = ? AND user_id = ?", *body.SaleID, userID).Error; err != nil {
					return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
				}
			}
			if body.PaymentMethodID != nil {
				var method models.PaymentMethod
				if err := tx.First(&method, "id = ? AND user_id = ?", *body.PaymentMethodID, userID).Error; err != nil {
					return fiber.NewError(fiber.StatusNotFound, "Ödeme yöntemi bulunamadı")
				}
			}

			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("ödeme kaydedilemedi: %w", err)
			}

			if err := tx.Model(&customer).
				Update("balance", gorm.Expr("balance - ?", body.Amount)).Error; err != nil {
				return fmt.Errorf("bakiye güncellenemedi: %w", err)
			}

			payment.Customer = customer
			return nil
		})
		if txErr != nil {
			if fe, ok := txErr.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme oluşturulamadı")
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "payment",
			EntityID:    payment.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ödeme alındı: %s - %.2f TL", payment.Customer.Name, payment.Amount),
			After:       toPaymentResponse(payment),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(payment))
	}
}

// GET /api/payments?customer_id=...&from=...&to=...
func ListPaymentsHandler() fiber.Handler {
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

		var payments []models.Payment
		if err := q.Order("date desc, id desc").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler listelenemedi")
		}

		res := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			res = append(res, toPaymentResponse(p))
		}
		return c.JSON(res)
	}
}
