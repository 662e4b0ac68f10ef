package domain

type OrderStatus string

const (
	StatusPendingPayment      OrderStatus = "PENDING_PAYMENT"
	StatusPendingConfirmation OrderStatus = "PENDING_CONFIRMATION"
	StatusCompleted           OrderStatus = "COMPLETED"
	StatusFailed              OrderStatus = "FAILED"
	StatusCancelled           OrderStatus = "CANCELLED"
)

const (
	PaymentCard         = "card"
	PaymentBankTransfer = "bank_transfer"
)

// transitions is the full set of legal status moves. Statuses only move
// forward; COMPLETED, FAILED and CANCELLED are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPendingPayment:      {StatusPendingConfirmation, StatusFailed, StatusCancelled},
	StatusPendingConfirmation: {StatusCompleted},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

type Order struct {
	ID                string      `db:"id"`
	UserID            string      `db:"user_id"`
	Total             float64     `db:"total"`
	Status            OrderStatus `db:"status"`
	PaymentMethod     string      `db:"payment_method"`
	ProofOfPaymentURL string      `db:"proof_url"`
	DownloadLink      string      `db:"download_link"`
	CreatedAt         string      `db:"created_at"`
	Items             []OrderItem `db:"-"`
}

// OrderItem is a purchase-time snapshot of a cart line. Name and Price
// are copied out of the catalog at creation and never re-read.
type OrderItem struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Qty       int     `db:"qty"`
	Price     float64 `db:"price"`
}
