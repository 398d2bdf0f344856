package stock

import (
	"errors"
	"fmt"

	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"
	"magaza-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockTransactionResponse struct {
	ID             uint    `json:"id"`
	ProductID      uint    `json:"product_id"`
	QuantityChange float64 `json:"quantity_change"`
	Direction      string  `json:"direction"`
	Reason         string  `json:"reason"`
	Date           string  `json:"date"`
	BalanceAfter   float64 `json:"balance_after"`
}

// GET /api/products/:id/stock-history
func ProductStockHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var productID uint
		if _, err := fmt.Sscan(c.Params("id"), &productID); err != nil || productID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün id geçersiz")
		}

		records, err := History(database.DB, userID, productID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketleri listelenemedi")
		}

		resp := make([]StockTransactionResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, toResponse(r))
		}

		return c.JSON(resp)
	}
}

func toResponse(r models.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:             r.ID,
		ProductID:      r.ProductID,
		QuantityChange: r.QuantityChange,
		Direction:      string(r.Direction),
		Reason:         r.Reason,
		Date:           r.Date.Format("2006-01-02"),
		BalanceAfter:   r.BalanceAfter,
	}
}
