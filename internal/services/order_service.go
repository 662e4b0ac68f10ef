package services

import (
	"database/sql"
	"time"

	"dukkan/internal/domain"
	"dukkan/internal/metrics"
	"dukkan/internal/repos"

	"github.com/google/uuid"
)

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Sim    *TransferSimulator
	Delay  time.Duration
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, users *repos.UserRepo, sim *TransferSimulator) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, Users: users, Sim: sim}
}

// Place converts the session's cart into an order. Card payments capture
// instantly: the order completes and the download link appears right away.
// Bank transfers start at PENDING_PAYMENT and a proof-upload simulation is
// scheduled. Line prices are the cart's price-at-add snapshots; the total
// is computed once here and never recomputed.
func (s *OrderService) Place(sid, paymentMethod string) (domain.Order, error) {
	pause(s.Delay)

	if paymentMethod != domain.PaymentCard && paymentMethod != domain.PaymentBankTransfer {
		return domain.Order{}, ErrBadPaymentMethod
	}
	u, err := s.Users.SessionUser(sid)
	if err != nil || u == nil {
		return domain.Order{}, ErrUnauthorized
	}

	cartID, err := s.Carts.EnsureCart(sid)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	total := 0.0
	lines := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		total += it.Subtotal()
		lines = append(lines, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			Price:     it.PriceAtAdd,
		})
	}

	o := domain.Order{
		ID:            uuid.NewString(),
		UserID:        u.ID,
		Total:         total,
		PaymentMethod: paymentMethod,
		Items:         lines,
	}
	if paymentMethod == domain.PaymentCard {
		o.Status = domain.StatusCompleted
		o.DownloadLink = DownloadLink(o.ID)
	} else {
		o.Status = domain.StatusPendingPayment
	}

	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}
	if paymentMethod == domain.PaymentBankTransfer {
		s.Sim.Schedule(o.ID)
	}
	_ = s.Carts.Clear(cartID)

	metrics.OrdersPlaced.WithLabelValues(paymentMethod).Inc()
	return o, nil
}

// Get returns an order to its owner or to an admin; anyone else gets
// ErrNotFound so order ids cannot be probed.
func (s *OrderService) Get(sid, orderID string) (domain.Order, error) {
	pause(s.Delay)
	o, err := s.Orders.Get(orderID)
	if err == sql.ErrNoRows {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	u, _ := s.Users.SessionUser(sid)
	if u == nil || (u.ID != o.UserID && !u.IsAdmin()) {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

// ListForUser returns the session user's orders, oldest first.
func (s *OrderService) ListForUser(sid string) ([]domain.Order, error) {
	pause(s.Delay)
	u, err := s.Users.SessionUser(sid)
	if err != nil || u == nil {
		return nil, ErrUnauthorized
	}
	return s.Orders.ListByUser(u.ID)
}

// ListAll returns every order, oldest first. Admin only.
func (s *OrderService) ListAll(sid string) ([]domain.Order, error) {
	pause(s.Delay)
	u, err := s.Users.SessionUser(sid)
	if err != nil || !u.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.Orders.ListAll()
}

// ConfirmTransfer marks a reviewed bank transfer as paid. Only an order
// sitting at PENDING_CONFIRMATION can be confirmed; anything else is a
// conflict. On success the order completes and the download link appears.
func (s *OrderService) ConfirmTransfer(sid, orderID string) (domain.Order, error) {
	pause(s.Delay)
	u, err := s.Users.SessionUser(sid)
	if err != nil || !u.IsAdmin() {
		return domain.Order{}, ErrUnauthorized
	}

	if _, err := s.Orders.Get(orderID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, ErrNotFound
		}
		return domain.Order{}, err
	}

	ok, err := s.Orders.TransitionStatus(orderID,
		domain.StatusPendingConfirmation, domain.StatusCompleted,
		"", DownloadLink(orderID))
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, ErrConflict
	}
	// Retire any pending simulation timer; a stale one would observe the
	// status guard and no-op.
	s.Sim.Cancel(orderID)

	metrics.TransfersConfirmed.Inc()
	return s.Orders.Get(orderID)
}
