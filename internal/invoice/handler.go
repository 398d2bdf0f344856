package invoice

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
	ProductID     uint    `json:"product_id"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	DiscountRate1 float64 `json:"discount_rate1"`
	DiscountRate2 float64 `json:"discount_rate2"`
	TaxRate       float64 `json:"tax_rate"`
}

type InvoiceRequest struct {
	CompanyID       uint          `json:"company_id"`
	InvoiceNo       string        `json:"invoice_no"`
	InvoiceDate     string        `json:"invoice_date"` // "2025-12-09"
	PaymentMethodID *uint         `json:"payment_method_id"`
	Lines           []LineRequest `json:"lines"`
}

type LineResponse struct {
	ID             uint    `json:"id"`
	ProductID      uint    `json:"product_id"`
	Quantity       float64 `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	DiscountRate1  float64 `json:"discount_rate1"`
	DiscountRate2  float64 `json:"discount_rate2"`
	TaxRate        float64 `json:"tax_rate"`
	LineTotal      float64 `json:"line_total"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
}

type InvoiceResponse struct {
	ID              uint           `json:"id"`
	CompanyID       uint           `json:"company_id"`
	InvoiceNo       string         `json:"invoice_no"`
	InvoiceDate     string         `json:"invoice_date"`
	PaymentMethodID *uint          `json:"payment_method_id"`
	TotalAmount     float64        `json:"total_amount"`
	TotalDiscount   float64        `json:"total_discount"`
	TotalTax        float64        `json:"total_tax"`
	GrandTotal      float64        `json:"grand_total"`
	Lines           []LineResponse `json:"lines,omitempty"`
}

func parseRequest(c *fiber.Ctx) (Input, error) {
	var body InvoiceRequest
	if err := c.BodyParser(&body); err != nil {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}

	if body.CompanyID == 0 {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "company_id zorunlu")
	}
	if len(body.Lines) == 0 {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "En az bir fatura satırı gerekli")
	}

	date := time.Now()
	if body.InvoiceDate != "" {
		d, err := time.Parse("2006-01-02", body.InvoiceDate)
		if err != nil {
			return Input{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		date = d
	}

	in := Input{
		CompanyID:       body.CompanyID,
		InvoiceNo:       body.InvoiceNo,
		InvoiceDate:     date,
		PaymentMethodID: body.PaymentMethodID,
	}
	for _, l := range body.Lines {
		if l.ProductID == 0 || l.Quantity <= 0 || l.UnitPrice < 0 {
			return Input{}, fiber.NewError(fiber.StatusBadRequest, "Satırda ürün, miktar ve fiyat geçerli olmalı")
		}
		in.Lines = append(in.Lines, LineInput{
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			DiscountRate1: l.DiscountRate1,
			DiscountRate2: l.DiscountRate2,
			TaxRate:       l.TaxRate,
		})
	}
	return in, nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ErrInvoiceNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
	case errors.Is(err, ErrCompanyNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
	case errors.Is(err, stock.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Fatura satırındaki ürün bulunamadı")
	case errors.Is(err, stock.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, "Yetersiz stok: "+err.Error())
	case errors.Is(err, ErrEmptyLines):
		return fiber.NewError(fiber.StatusBadRequest, "En az bir fatura satırı gerekli")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Fatura işlemi tamamlanamadı")
	}
}

func toResponse(inv *models.PurchaseInvoice, withLines bool) InvoiceResponse {
	resp := InvoiceResponse{
		ID:              inv.ID,
		CompanyID:       inv.CompanyID,
		InvoiceNo:       inv.InvoiceNo,
		InvoiceDate:     inv.InvoiceDate.Format("2006-01-02"),
		PaymentMethodID: inv.PaymentMethodID,
		TotalAmount:     inv.TotalAmount,
		TotalDiscount:   inv.TotalDiscount,
		TotalTax:        inv.TotalTax,
		GrandTotal:      inv.GrandTotal,
	}
	if withLines {
		for _, l := range inv.Lines {
			resp.Lines = append(resp.Lines, LineResponse{
				ID:             l.ID,
				ProductID:      l.ProductID,
				Quantity:       l.Quantity,
				UnitPrice:      l.UnitPrice,
				DiscountRate1:  l.DiscountRate1,
				DiscountRate2:  l.DiscountRate2,
				TaxRate:        l.TaxRate,
				LineTotal:      l.LineTotal,
				DiscountAmount: l.DiscountAmount,
				TaxAmount:      l.TaxAmount,
			})
		}
	}
	return resp
}

// POST /api/purchase-invoices
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		in, err := parseRequest(c)
		if err != nil {
			return err
		}

		inv, err := Create(database.DB, userID, in)
		if err != nil {
			return mapServiceError(err)
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "purchase_invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Alış faturası eklendi: %s - %.2f TL", inv.InvoiceNo, inv.GrandTotal),
			After:       toResponse(inv, false),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(inv, true))
	}
}

// GET /api/purchase-invoices?from=...&to=...&company_id=...
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.PurchaseInvoice{}).Where("user_id = ?", userID)

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("invoice_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("invoice_date <= ?", to)
		}
		if cidStr := c.Query("company_id"); cidStr != "" {
			var cid uint
			if _, err := fmt.Sscan(cidStr, &cid); err != nil || cid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "company_id geçersiz")
			}
			dbq = dbq.Where("company_id = ?", cid)
		}

		var invoices []models.PurchaseInvoice
		if err := dbq.Order("invoice_date desc, id desc").Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Faturalar listelenemedi")
		}

		resp := make([]InvoiceResponse, 0, len(invoices))
		for i := range invoices {
			resp = append(resp, toResponse(&invoices[i], false))
		}
		return c.JSON(resp)
	}
}

// GET /api/purchase-invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var invoiceID uint
		if _, err := fmt.Sscan(c.Params("id"), &invoiceID); err != nil || invoiceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura id geçersiz")
		}

		inv, err := Get(database.DB, userID, invoiceID)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(toResponse(inv, true))
	}
}

// PUT /api/purchase-invoices/:id
func UpdateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var invoiceID uint
		if _, err := fmt.Sscan(c.Params("id"), &invoiceID); err != nil || invoiceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura id geçersiz")
		}

		in, err := parseRequest(c)
		if err != nil {
			return err
		}

		before, err := Get(database.DB, userID, invoiceID)
		if err != nil {
			return mapServiceError(err)
		}

		inv, err := Update(database.DB, userID, invoiceID, in)
		if err != nil {
			return mapServiceError(err)
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "purchase_invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Alış faturası güncellendi: %s - %.2f TL", inv.InvoiceNo, inv.GrandTotal),
			Before:      toResponse(before, false),
			After:       toResponse(inv, false),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(toResponse(inv, true))
	}
}

// DELETE /api/purchase-invoices/:id
func DeleteInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var invoiceID uint
		if _, err := fmt.Sscan(c.Params("id"), &invoiceID); err != nil || invoiceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura id geçersiz")
		}

		before, err := Get(database.DB, userID, invoiceID)
		if err != nil {
			return mapServiceError(err)
		}

		if err := Delete(database.DB, userID, invoiceID); err != nil {
			return mapServiceError(err)
		}

		actorID, actorName := auth.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			OwnerID:     userID,
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "purchase_invoice",
			EntityID:    invoiceID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Alış faturası silindi: %s - %.2f TL", before.InvoiceNo, before.GrandTotal),
			Before:      toResponse(before, false),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(fiber.Map{"message": "Fatura silindi"})
	}
}
