package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/apetrov/vendomat-backend/internal/domain"
	"github.com/apetrov/vendomat-backend/internal/usecase/purchase"
	"github.com/apetrov/vendomat-backend/internal/usecase/register"
)

// MachineHandler serves the customer-facing endpoints.
type MachineHandler struct {
	Register *register.Register
	Purchase *purchase.Service
}

// InsertCoinRequest defines what the customer sends us
type InsertCoinRequest struct {
	Denomination int64 `json:"denomination"` // minor units
}

// InsertCoin drops one coin into the hopper.
func (h *MachineHandler) InsertCoin(c *fiber.Ctx) error {
	var req InsertCoinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	d := domain.Denomination(req.Denomination)
	if !d.IsValid() {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Unknown denomination"})
	}

	h.Register.Insert(domain.NewCoin(d))
	coinsInsertedTotal.WithLabelValues(strconv.FormatInt(req.Denomination, 10)).Inc()

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"inserted": h.Register.InsertedAmount().MinorUnits(),
	})
}

// InsertedAmount reports the current hopper total.
func (h *MachineHandler) InsertedAmount(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"inserted": h.Register.InsertedAmount().MinorUnits(),
	})
}

// Refund returns every coin the customer has inserted.
func (h *MachineHandler) Refund(c *fiber.Ctx) error {
	coins := h.Register.RefundInserted()
	refundsTotal.Inc()

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"coins": coins,
		"total": coins.Total().MinorUnits(),
	})
}

// ListProducts returns the catalog with prices and stock.
func (h *MachineHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.Purchase.Catalog.List(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list products"})
	}

	out := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		out = append(out, fiber.Map{
			"id":       p.ID,
			"name":     p.Name,
			"kind":     p.Kind,
			"price":    p.Price.MinorUnits(),
			"quantity": p.Quantity,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"products": out})
}

// BuyRequest defines a purchase attempt
type BuyRequest struct {
	ProductID string `json:"product_id"`
}

// Buy executes a purchase of the requested product.
func (h *MachineHandler) Buy(c *fiber.Ctx) error {
	var req BuyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	receipt, err := h.Purchase.Buy(c.Context(), productID)
	if err != nil {
		status, reason := purchaseFailure(err)
		purchaseFailuresTotal.WithLabelValues(reason).Inc()
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "reason": reason})
	}

	purchasesTotal.Inc()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"receipt": fiber.Map{
			"id":           receipt.ID,
			"product_id":   receipt.ProductID,
			"product":      receipt.ProductName,
			"price":        receipt.Price.MinorUnits(),
			"paid":         receipt.Paid.MinorUnits(),
			"change":       receipt.ChangeAmount.MinorUnits(),
			"change_coins": receipt.ChangeCoins,
			"created_at":   receipt.CreatedAt,
		},
	})
}

// purchaseFailure maps a business failure to an HTTP status and a stable
// machine-readable reason tag.
func purchaseFailure(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusConflict, "out_of_stock"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient_funds"
	case errors.Is(err, domain.ErrChangeImpossible):
		return http.StatusConflict, "change_impossible"
	}
	return http.StatusInternalServerError, "internal"
}

// AdminHandler serves the operator endpoints; every route is behind
// AdminProtected.
type AdminHandler struct{}

// AddFloatRequest defines a float top-up
type AddFloatRequest struct {
	Denomination int64 `json:"denomination"` // minor units
	Count        int   `json:"count"`
}

// AddFloat adds coins to the vault.
func (h *AdminHandler) AddFloat(c *fiber.Ctx) error {
	var req AddFloatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	d := domain.Denomination(req.Denomination)
	if !d.IsValid() {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Unknown denomination"})
	}

	sessionFromCtx(c).AddFloat(d, req.Count)
	return c.SendStatus(http.StatusNoContent)
}

// CollectCash empties the vault and returns its contents.
func (h *AdminHandler) CollectCash(c *fiber.Ctx) error {
	collected := sessionFromCtx(c).CollectCash()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"coins": collected,
		"total": collected.Total().MinorUnits(),
	})
}

// CashSnapshot reports the current vault and hopper contents.
func (h *AdminHandler) CashSnapshot(c *fiber.Ctx) error {
	vault, hopper := sessionFromCtx(c).CashSnapshot()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"vault":        vault,
		"vault_total":  vault.Total().MinorUnits(),
		"hopper":       hopper,
		"hopper_total": hopper.Total().MinorUnits(),
	})
}

// StockRequest defines a stock top-up
type StockRequest struct {
	Count int `json:"count"`
}

// IncreaseStock adds units of a product.
func (h *AdminHandler) IncreaseStock(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := sessionFromCtx(c).IncreaseStock(c.Context(), productID, req.Count); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to increase stock"})
	}

	return c.SendStatus(http.StatusNoContent)
}
