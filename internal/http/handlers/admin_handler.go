package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	applog "vitrine/internal/log"
	"vitrine/internal/services"
	"vitrine/internal/validate"
)

// AdminHandler verifies the admin password and applies admin-only order
// operations. The server never hands out a token; the client-side guard
// keeps its own time-boxed flag after a 2xx verification.
type AdminHandler struct {
	Orders       *services.OrderService
	PasswordHash string // bcrypt; empty disables admin operations
}

type verifyBody struct {
	Password string `json:"password"`
}

func (h *AdminHandler) checkPassword(password string) bool {
	if h.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)) == nil
}

// VerifyPassword answers 204 on success, 401 otherwise.
func (h *AdminHandler) VerifyPassword(c *fiber.Ctx) error {
	var b verifyBody
	if err := c.BodyParser(&b); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed payload"})
	}
	if !h.checkPassword(b.Password) {
		applog.Security(c, "admin.verify.fail", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid password"})
	}
	applog.Audit(c, "admin.verify.success", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

// RequirePassword guards admin mutations with the same bcrypt check,
// taken from the Authorization bearer value.
func (h *AdminHandler) RequirePassword(c *fiber.Ctx) error {
	raw := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if !h.checkPassword(raw) {
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.Next()
}

type statusBody struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	var b statusBody
	if err := c.BodyParser(&b); err != nil || b.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing status"})
	}
	found, err := h.Orders.UpdateStatus(oid, b.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order_id": oid, "status": b.Status})
	return c.SendStatus(fiber.StatusNoContent)
}
