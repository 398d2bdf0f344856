package partner

import (
	"strings"
	"time"

	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"
	"magaza-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PersonnelResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Salary    float64 `json:"salary"`
	StartDate string  `json:"start_date"`
}

type PersonnelRequest struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Salary    float64 `json:"salary"`
	StartDate string  `json:"start_date"`
}

func toPersonnelResponse(p models.Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Salary:    p.Salary,
		StartDate: p.StartDate.Format("2006-01-02"),
	}
}

// GET /api/personnel
func ListPersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var personnel []models.Personnel
		if err := database.DB.Where("user_id = ?", userID).
			Order("name asc").Find(&personnel).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel listelenemedi")
		}

		res := make([]PersonnelResponse, 0, len(personnel))
		for _, p := range personnel {
			res = append(res, toPersonnelResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/personnel (sadece admin)
func CreatePersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var body PersonnelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Personel adı zorunlu")
		}
		if body.Salary < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Maaş negatif olamaz")
		}

		startDate := time.Now()
		if body.StartDate != "" {
			parsed, err := time.Parse("2006-01-02", body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-AA-GG olmalı)")
			}
			startDate = parsed
		}

		p := models.Personnel{
			UserID:    userID,
			Name:      body.Name,
			Phone:     strings.TrimSpace(body.Phone),
			Salary:    body.Salary,
			StartDate: startDate,
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toPersonnelResponse(p))
	}
}

// PUT /api/personnel/:id (sadece admin)
func UpdatePersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var p models.Personnel
		if err := database.DB.First(&p, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		var body PersonnelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			p.Name = name
		}
		p.Phone = strings.TrimSpace(body.Phone)
		if body.Salary < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Maaş negatif olamaz")
		}
		p.Salary = body.Salary
		if body.StartDate != "" {
			parsed, err := time.Parse("2006-01-02", body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-AA-GG olmalı)")
			}
			p.StartDate = parsed
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel güncellenemedi")
		}
		return c.JSON(toPersonnelResponse(p))
	}
}

// DELETE /api/personnel/:id (sadece admin)
func DeletePersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var p models.Personnel
		if err := database.DB.First(&p, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Personel silindi"})
	}
}
