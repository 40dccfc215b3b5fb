package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"vitrine/internal/domain"
	applog "vitrine/internal/log"
	"vitrine/internal/services"
	"vitrine/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// Create handles the order-creation endpoint the checkout orchestrator
// posts to. Validation failures and total mismatches are 400s; the draft
// is never partially persisted.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var draft domain.OrderDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed order payload"})
	}

	var ok bool
	if draft.CustomerEmail, ok = validate.Email(draft.CustomerEmail); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}
	if draft.CustomerPhone, ok = validate.Phone(draft.CustomerPhone); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone"})
	}
	if draft.CustomerName, ok = validate.Name(draft.CustomerName); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name too long"})
	}
	draft.Notes = validate.Notes(draft.Notes)

	ord, err := h.Orders.Place(draft, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder),
			errors.Is(err, services.ErrBadQuantity),
			errors.Is(err, services.ErrTotalMismatch):
			applog.Security(c, "order.place.reject", map[string]any{"error": err.Error()})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			applog.Error(c, "order.place.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not place order"})
		}
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id":    ord.ID,
		"total_cents": ord.TotalCents,
		"items":       len(ord.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(ord)
}

// Get serves the order-status endpoint the tracking service polls.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	ord, err := h.Orders.Get(oid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		applog.Error(c, "order.get.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load order"})
	}
	return c.JSON(ord)
}

// View renders the order confirmation page with the payment code.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	ord, err := h.Orders.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return c.Render("order", fiber.Map{
		"Order": ord,
		"Total": domain.FormatCents(ord.TotalCents),
	})
}
