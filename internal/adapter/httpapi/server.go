package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/apetrov/vendomat-backend/internal/usecase/admin"
	"github.com/apetrov/vendomat-backend/internal/usecase/purchase"
	"github.com/apetrov/vendomat-backend/internal/usecase/register"
)

// NewApp builds the Fiber application with every customer and admin route
// registered.
func NewApp(reg *register.Register, purchaseService *purchase.Service, adminService *admin.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	machine := &MachineHandler{Register: reg, Purchase: purchaseService}
	adminHandler := &AdminHandler{}

	api := app.Group("/v1")

	// Customer
	api.Post("/coins", machine.InsertCoin)
	api.Get("/coins", machine.InsertedAmount)
	api.Post("/refund", machine.Refund)
	api.Get("/products", machine.ListProducts)
	api.Post("/purchases", machine.Buy)

	// Operator
	operator := api.Group("/admin", AdminProtected(adminService))
	operator.Post("/float", adminHandler.AddFloat)
	operator.Post("/collect", adminHandler.CollectCash)
	operator.Get("/cash", adminHandler.CashSnapshot)
	operator.Post("/products/:id/stock", adminHandler.IncreaseStock)

	return app
}
