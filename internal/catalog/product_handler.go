package catalog

import (
	"strings"

	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"
	"magaza-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Barcode       string  `json:"barcode"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
}

type CreateProductRequest struct {
	Name          string  `json:"name"`
	Barcode       string  `json:"barcode"` // Opsiyonel
	Unit          string  `json:"unit"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Barcode       *string  `json:"barcode"`
	Unit          *string  `json:"unit"`
	PurchasePrice *float64 `json:"purchase_price"`
	SalePrice     *float64 `json:"sale_price"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Barcode:       p.Barcode,
		Unit:          p.Unit,
		Quantity:      p.Quantity,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
	}
}

// GET /api/products?q=...
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Product{}).Where("user_id = ?", userID)

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("name LIKE ? OR barcode = ?", "%"+q+"%", q)
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Barcode = strings.TrimSpace(body.Barcode)

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}
		if body.PurchasePrice < 0 || body.SalePrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyatlar negatif olamaz")
		}

		// Barkod unique kontrolü (boş değilse)
		if body.Barcode != "" {
			var existing models.Product
			if err := database.DB.Where("user_id = ? AND barcode = ?", userID, body.Barcode).
				First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Bu barkod zaten kullanılıyor")
			}
		}

		p := models.Product{
			UserID:        userID,
			Name:          body.Name,
			Barcode:       body.Barcode,
			Unit:          body.Unit,
			PurchasePrice: body.PurchasePrice,
			SalePrice:     body.SalePrice,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// PUT /api/products/:id
// Stok miktarı buradan değişmez; miktar sadece fatura/satış üzerinden,
// stok defterine yazılarak hareket eder.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
			}
			p.Name = name
		}
		if body.Barcode != nil {
			p.Barcode = strings.TrimSpace(*body.Barcode)
		}
		if body.Unit != nil {
			p.Unit = strings.TrimSpace(*body.Unit)
		}
		if body.PurchasePrice != nil {
			if *body.PurchasePrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Alış fiyatı negatif olamaz")
			}
			p.PurchasePrice = *body.PurchasePrice
		}
		if body.SalePrice != nil {
			if *body.SalePrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Satış fiyatı negatif olamaz")
			}
			p.SalePrice = *body.SalePrice
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		return c.JSON(toProductResponse(p))
	}
}

// DELETE /api/products/:id (sadece admin)
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		// Stok hareketi olan ürün silinemez, defter delinir
		var count int64
		if err := database.DB.Model(&models.StockTransaction{}).
			Where("user_id = ? AND product_id = ?", userID, p.ID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün kontrol edilemedi")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Stok hareketi olan ürün silinemez")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Ürün silindi"})
	}
}

// GET /api/payment-methods
func ListPaymentMethodsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var methods []models.PaymentMethod
		if err := database.DB.Where("user_id = ?", userID).
			Order("id asc").Find(&methods).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme yöntemleri listelenemedi")
		}

		type methodResponse struct {
			ID     uint                    `json:"id"`
			Name   string                  `json:"name"`
			Bucket models.SettlementBucket `json:"bucket"`
		}
		res := make([]methodResponse, 0, len(methods))
		for _, m := range methods {
			res = append(res, methodResponse{ID: m.ID, Name: m.Name, Bucket: models.ResolveBucket(m.Name)})
		}
		return c.JSON(res)
	}
}
