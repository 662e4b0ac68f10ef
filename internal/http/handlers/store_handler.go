package handlers

import (
	"strings"

	"dukkan/internal/log"
	"dukkan/internal/services"
	"dukkan/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StoreHandler struct {
	Catalog *services.CatalogService
}

// Home renders the product grid, filtered by ?q= when present.
func (h *StoreHandler) Home(c *fiber.Ctx) error {
	rawQ := strings.TrimSpace(c.Query("q"))
	if rawQ == "" {
		products, err := h.Catalog.List()
		if err != nil {
			log.Error(c, "catalog.list", err, nil)
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store. Please retry."})
		}
		return render(c, "home", fiber.Map{"Products": products, "Q": "", "Count": len(products)})
	}

	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("home", fiber.Map{
			"Products": []any{}, "Q": "", "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}
	products, err := h.Catalog.Search(q)
	if err != nil {
		log.Error(c, "catalog.search", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}
	return render(c, "home", fiber.Map{"Products": products, "Q": q, "Count": len(products)})
}

func (h *StoreHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}
