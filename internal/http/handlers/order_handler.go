package handlers

import (
	"dukkan/internal/domain"
	applog "dukkan/internal/log"
	"dukkan/internal/services"
	"dukkan/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Auth  *services.AuthService
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	method, ok := validate.PaymentMethod(c.FormValue("payment_method"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "payment_method"})
		return c.Status(fiber.StatusBadRequest).SendString("choose a payment method")
	}

	o, err := h.Order.Place(sid, method)
	switch err {
	case nil:
	case services.ErrUnauthorized:
		return c.Redirect("/login")
	case services.ErrEmptyCart:
		return c.Status(fiber.StatusBadRequest).Render("cart", fiber.Map{
			"Cart": services.CartView{}, "Err": "Your cart is empty.",
		})
	default:
		applog.Error(c, "order.place.fail", err, map[string]any{"sid": sid})
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please try again.")
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"method":   o.PaymentMethod,
		"total":    o.Total,
		"status":   o.Status,
	})
	return c.Redirect("/order/" + o.ID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, err := h.Order.Get(c.Cookies("sid"), oid)
	if err != nil {
		if err != services.ErrNotFound {
			applog.Error(c, "order.view.fail", err, map[string]any{"order_id": oid})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Order": o})
}

// History lists orders for the current logged-in user, oldest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	// RequireUser guarantees a user; fall back to 404 just in case
	if u == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Orders not available"})
	}
	orders, err := h.Order.ListForUser(c.Cookies("sid"))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}

// Status is a JSON polling endpoint so a page can watch the bank-transfer
// simulation land without reloading.
func (h *OrderHandler) Status(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	o, err := h.Order.Get(c.Cookies("sid"), oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	return c.JSON(fiber.Map{
		"id":                o.ID,
		"status":            o.Status,
		"downloadLink":      o.DownloadLink,
		"proofOfPaymentUrl": o.ProofOfPaymentURL,
	})
}
