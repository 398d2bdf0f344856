package report

import (
	"time"

	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	*Summary
}

// GET /api/reports/daily?date=2025-12-09 (boşsa bugün)
func DailySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		day := time.Now()
		if dateStr := c.Query("date"); dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date geçersiz, 'YYYY-MM-DD' olmalı")
			}
			day = d
		}
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		to := from.AddDate(0, 0, 1).Add(-time.Second)

		s, err := Summarize(database.DB, userID, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}

		return c.JSON(SummaryResponse{
			StartDate: from.Format("2006-01-02"),
			EndDate:   from.Format("2006-01-02"),
			Summary:   s,
		})
	}
}

// GET /api/reports/range?from=2025-12-01&to=2025-12-31
func RangeSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "from ve to tarihleri zorunlu (YYYY-MM-DD)")
		}

		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
		}
		// to gün sonuna çekilir ki gün içi kayıtlar kapsansın
		to = to.AddDate(0, 0, 1).Add(-time.Second)

		s, err := Summarize(database.DB, userID, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}

		return c.JSON(SummaryResponse{
			StartDate: fromStr,
			EndDate:   toStr,
			Summary:   s,
		})
	}
}
