package sale

import (
	"errors"
	"fmt"
	"time"

	"magaza-backend/internal/audit"
	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"
	"magaza-backend/internal/models"
	"magaza-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

type LineRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Discount  float64 `json:"discount"`
}

type OpenSaleRequest struct {
	CustomerID *uint         `json:"customer_id"`
	Date       *string       `json:"date"` // boşsa bugün
	Lines      []LineRequest `json:"lines"`
}

type FinalizeSaleRequest struct {
	PaymentMethodID uint `json:"payment_method_id"`
}

type SaleLineResponse struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

type SaleResponse struct {
	ID              uint               `json:"id"`
	CustomerID      *uint              `json:"customer_id"`
	Date            string             `json:"date"`
	IsCompleted     bool               `json:"is_completed"`
	PaymentMethodID *uint              `json:"payment_method_id"`
	TotalAmount     float64            `json:"total_amount"`
	Lines           []SaleLineResponse `json:"lines,omitempty"`
}

func toResponse(s *models.Sale, withLines bool) SaleResponse {
	resp := SaleResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		Date:            s.Date.Format("2006-01-02"),
		IsCompleted:     s.IsCompleted,
		PaymentMethodID: s.PaymentMethodID,
		TotalAmount:     s.TotalAmount,
	}
	if withLines {
		for _, l := range s.Lines {
			resp.Lines = append(resp.Lines, SaleLineResponse{
				ID:        l.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Discount:  l.Discount,
				Total:     l.Total,
			})
		}
	}
	return resp
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ErrSaleNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
	case errors.Is(err, ErrCustomerNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
	case errors.Is(err, ErrMethodNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Ödeme yöntemi bulunamadı")
	case errors.Is(err, ErrAlreadyCompleted):
		return fiber.NewError(fiber.StatusConflict, "Satış zaten tamamlanmış")
	case errors.Is(err, stock.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Satış satırındaki ürün bulunamadı")
	case errors.Is(err, stock.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, "Yetersiz stok: "+err.Error())
	case errors.Is(err, ErrEmptyLines):
		return fiber.NewError(fiber.StatusBadRequest, "En az bir satış satırı gerekli")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Satış işlemi tamamlanamadı")
	}
}

// POST /api/sales
func OpenSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var body OpenSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if len(body.Lines) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir satış satırı gerekli")
		}

		date := time.Now()
		if body.Date != nil && *body.Date != "" {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			date = d
		}

		in := OpenInput{CustomerID: body.CustomerID, Date: date}
		for _, l := range body.Lines {
			if l.ProductID == 0 || l.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Satırda ürün ve miktar geçerli olmalı")
			}
			in.Lines = append(in.Lines, LineInput{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Discount:  l.Discount,
			})
		}

		s, err := Open(database.DB, userID, in)
		if err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(s, true))
	}
}

// POST /api/sales/:id/finalize
func FinalizeSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var saleID uint
		if _, err := fmt.Sscan(c.Params("id"), &saleID); err != nil || saleID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Satış id geçersiz")
		}

		var body FinalizeSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.PaymentMethodID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "payment_method_id zorunlu")
		}

		s, err := Finalize(database.DB, userID, saleID, body.PaymentMethodID)
		if err != nil {
			return mapServiceError(err)
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "sale",
			EntityID:    s.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Satış tamamlandı: %.2f TL", s.TotalAmount),
			After:       toResponse(s, false),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(toResponse(s, false))
	}
}

// GET /api/sales?from=...&to=...&completed=true
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Sale{}).Where("user_id = ?", userID)

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("date <= ?", to)
		}
		if completedStr := c.Query("completed"); completedStr != "" {
			dbq = dbq.Where("is_completed = ?", completedStr == "true")
		}

		var sales []models.Sale
		if err := dbq.Order("date desc, id desc").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		resp := make([]SaleResponse, 0, len(sales))
		for i := range sales {
			resp = append(resp, toResponse(&sales[i], false))
		}
		return c.JSON(resp)
	}
}

// GET /api/sales/:id
func GetSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var saleID uint
		if _, err := fmt.Sscan(c.Params("id"), &saleID); err != nil || saleID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Satış id geçersiz")
		}

		s, err := Get(database.DB, userID, saleID)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(toResponse(s, true))
	}
}
