package main

import (
	"log"
	"strings"

	"magaza-backend/internal/audit"
	"magaza-backend/internal/auth"
	"magaza-backend/internal/catalog"
	"magaza-backend/internal/config"
	"magaza-backend/internal/database"
	"magaza-backend/internal/finance"
	"magaza-backend/internal/invoice"
	"magaza-backend/internal/models"
	"magaza-backend/internal/partner"
	"magaza-backend/internal/reconcile"
	"magaza-backend/internal/report"
	"magaza-backend/internal/sale"
	"magaza-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Ürünler & stok
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Post("/products", catalog.CreateProductHandler())
	protected.Put("/products/:id", catalog.UpdateProductHandler())
	protected.Get("/products/:id/stock-history", stock.ProductStockHistoryHandler())

	// Ödeme yöntemleri
	protected.Get("/payment-methods", catalog.ListPaymentMethodsHandler())

	// Alış faturaları
	protected.Post("/purchase-invoices", invoice.CreateInvoiceHandler())
	protected.Get("/purchase-invoices", invoice.ListInvoicesHandler())
	protected.Get("/purchase-invoices/:id", invoice.GetInvoiceHandler())
	protected.Put("/purchase-invoices/:id", invoice.UpdateInvoiceHandler())

	// Satışlar
	protected.Post("/sales", sale.OpenSaleHandler())
	protected.Post("/sales/:id/finalize", sale.FinalizeSaleHandler())
	protected.Get("/sales", sale.ListSalesHandler())
	protected.Get("/sales/:id", sale.GetSaleHandler())

	// Müşteriler
	protected.Get("/customers", partner.ListCustomersHandler())
	protected.Post("/customers", partner.CreateCustomerHandler())
	protected.Get("/customers/:id", partner.GetCustomerHandler())
	protected.Put("/customers/:id", partner.UpdateCustomerHandler())
	protected.Get("/customers/:id/statement", reconcile.CustomerStatementHandler())

	// Firmalar
	protected.Get("/companies", partner.ListCompaniesHandler())
	protected.Post("/companies", partner.CreateCompanyHandler())
	protected.Put("/companies/:id", partner.UpdateCompanyHandler())
	protected.Get("/companies/:id/statement", reconcile.CompanyStatementHandler())

	// Borç / ödeme
	protected.Post("/debts", finance.CreateDebtHandler())
	protected.Get("/debts", finance.ListDebtsHandler())
	protected.Post("/payments", finance.CreatePaymentHandler())
	protected.Get("/payments", finance.ListPaymentsHandler())

	// Firma cari hareketleri
	protected.Post("/company-transactions", finance.CreateCompanyTransactionHandler())
	protected.Get("/company-transactions", finance.ListCompanyTransactionsHandler())

	// Gelir / gider
	protected.Post("/incomes", finance.CreateIncomeHandler())
	protected.Get("/incomes", finance.ListIncomesHandler())
	protected.Post("/expenses", finance.CreateExpenseHandler())
	protected.Get("/expenses", finance.ListExpensesHandler())

	// Personel
	protected.Get("/personnel", partner.ListPersonnelHandler())

	// Raporlar
	protected.Get("/reports/daily", report.DailySummaryHandler())
	protected.Get("/reports/range", report.RangeSummaryHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())
	adminRoutes.Delete("/purchase-invoices/:id", invoice.DeleteInvoiceHandler())
	adminRoutes.Delete("/customers/:id", partner.DeleteCustomerHandler())
	adminRoutes.Delete("/companies/:id", partner.DeleteCompanyHandler())
	adminRoutes.Delete("/incomes/:id", finance.DeleteIncomeHandler())
	adminRoutes.Delete("/expenses/:id", finance.DeleteExpenseHandler())
	adminRoutes.Post("/users/cashiers", auth.CreateCashierHandler())
	adminRoutes.Post("/personnel", partner.CreatePersonnelHandler())
	adminRoutes.Put("/personnel/:id", partner.UpdatePersonnelHandler())
	adminRoutes.Delete("/personnel/:id", partner.DeletePersonnelHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
