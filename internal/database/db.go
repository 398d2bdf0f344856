package database

import (
	"log"

	"magaza-backend/internal/config"
	"magaza-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate - Şemayı kurar. Testler aynı şemayı sqlite üzerinde kurmak için
// doğrudan çağırır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.StockTransaction{},
		&models.Customer{},
		&models.Company{},
		&models.Personnel{},
		&models.PaymentMethod{},
		&models.PurchaseInvoice{},
		&models.PurchaseInvoiceLine{},
		&models.Sale{},
		&models.SaleLine{},
		&models.Debt{},
		&models.Payment{},
		&models.CompanyTransaction{},
		&models.Income{},
		&models.Expense{},
		&models.AuditLog{},
	)
}

// SeedPaymentMethods - Kullanıcının varsayılan ödeme yöntemlerini oluşturur.
// Kayıt sırasında çağrılır, mevcutlara dokunmaz.
func SeedPaymentMethods(db *gorm.DB, userID uint) error {
	defaults := []string{
		models.MethodNameCash,
		models.MethodNamePOS,
		models.MethodNameCard,
		models.MethodNameOpenAccount,
		models.MethodNameSplit,
	}
	for _, name := range defaults {
		var m models.PaymentMethod
		err := db.Where("user_id = ? AND name = ?", userID, name).
			Attrs(models.PaymentMethod{UserID: userID, Name: name}).
			FirstOrCreate(&m).Error
		if err != nil {
			return err
		}
	}
	return nil
}
