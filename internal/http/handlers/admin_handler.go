package handlers

import (
	applog "dukkan/internal/log"
	"dukkan/internal/services"
	"dukkan/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Order *services.OrderService
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Order.ListAll(c.Cookies("sid"))
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders})
}

// POST /admin/orders/:id/confirm
func (h *AdminHandler) ConfirmTransfer(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing order id")
	}
	o, err := h.Order.ConfirmTransfer(c.Cookies("sid"), oid)
	switch err {
	case nil:
	case services.ErrNotFound:
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	case services.ErrConflict:
		applog.Security(c, "admin.transfer.confirm.conflict", map[string]any{"order_id": oid})
		return c.Status(409).SendString("order is not awaiting confirmation")
	default:
		applog.Error(c, "admin.transfer.confirm.fail", err, map[string]any{"order_id": oid})
		return c.Status(400).SendString("could not confirm transfer")
	}
	applog.Audit(c, "admin.transfer.confirm", map[string]any{"order_id": o.ID, "status": o.Status})
	return c.Redirect("/admin/orders")
}
