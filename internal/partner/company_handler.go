package partner

import (
	"strings"

	"magaza-backend/internal/auth"
	"magaza-backend/internal/database"
	"magaza-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CompanyResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	TaxNo   string `json:"tax_no"`
	Address string `json:"address"`
}

type CompanyRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	TaxNo   string `json:"tax_no"`
	Address string `json:"address"`
}

func toCompanyResponse(co models.Company) CompanyResponse {
	return CompanyResponse{
		ID:      co.ID,
		Name:    co.Name,
		Phone:   co.Phone,
		TaxNo:   co.TaxNo,
		Address: co.Address,
	}
}

// GET /api/companies
func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var companies []models.Company
		if err := database.DB.Where("user_id = ?", userID).
			Order("name asc").Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firmalar listelenemedi")
		}

		res := make([]CompanyResponse, 0, len(companies))
		for _, co := range companies {
			res = append(res, toCompanyResponse(co))
		}
		return c.JSON(res)
	}
}

// POST /api/companies
func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var body CompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Firma adı zorunlu")
		}

		var count int64
		if err := database.DB.Model(&models.Company{}).
			Where("user_id = ? AND name = ?", userID, body.Name).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma kontrol edilemedi")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir firma zaten var")
		}

		co := models.Company{
			UserID:  userID,
			Name:    body.Name,
			Phone:   strings.TrimSpace(body.Phone),
			TaxNo:   strings.TrimSpace(body.TaxNo),
			Address: strings.TrimSpace(body.Address),
		}
		if err := database.DB.Create(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toCompanyResponse(co))
	}
}

// PUT /api/companies/:id
func UpdateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var co models.Company
		if err := database.DB.First(&co, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
		}

		var body CompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			co.Name = name
		}
		co.Phone = strings.TrimSpace(body.Phone)
		co.TaxNo = strings.TrimSpace(body.TaxNo)
		co.Address = strings.TrimSpace(body.Address)

		if err := database.DB.Save(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma güncellenemedi")
		}
		return c.JSON(toCompanyResponse(co))
	}
}

// DELETE /api/companies/:id (sadece admin)
func DeleteCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.OwnerID(c)
		if err != nil {
			return err
		}

		var co models.Company
		if err := database.DB.First(&co, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
		}

		var count int64
		if err := database.DB.Model(&models.PurchaseInvoice{}).
			Where("user_id = ? AND company_id = ?", userID, co.ID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma kontrol edilemedi")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Faturası olan firma silinemez")
		}

		if err := database.DB.Delete(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Firma silindi"})
	}
}
