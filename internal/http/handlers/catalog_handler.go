package handlers

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "vitrine/internal/log"
	"vitrine/internal/services"
	"vitrine/internal/validate"
)

// CatalogHandler serves the read-only catalog API. The browsing UI lives
// elsewhere; this is just the data it reads.
type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "catalog.categories.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load categories"})
	}
	return c.JSON(cats)
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != "" {
		if _, ok := validate.ID(category); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	prods, err := h.Catalog.ListProducts(category, page, 12)
	if err != nil {
		applog.Error(c, "catalog.products.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(prods)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		applog.Error(c, "catalog.product.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	return c.JSON(p)
}
