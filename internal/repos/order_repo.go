package repos

import (
	"dukkan/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order header and its snapshot line items in one
// transaction. The seq column records insertion order for listings.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, user_id, total, status, payment_method, proof_url, download_link, created_at, seq)
	  VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP,
	         (SELECT COALESCE(MAX(seq),0)+1 FROM orders))
	`, o.ID, o.UserID, o.Total, o.Status, o.PaymentMethod, o.ProofOfPaymentURL, o.DownloadLink); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, qty, price)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Name, it.Qty, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
	  SELECT id, user_id, total, status, payment_method, proof_url, download_link, created_at
	  FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, err
	}
	if err := r.db.Select(&o.Items, `
	  SELECT product_id, name, qty, price
	  FROM order_items WHERE order_id = ?
	  ORDER BY product_id
	`, orderID); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// ListByUser returns a user's orders, oldest first.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, user_id, total, status, payment_method, proof_url, download_link, created_at
	  FROM orders WHERE user_id = ?
	  ORDER BY seq
	`, userID)
	if err != nil {
		return nil, err
	}
	return r.attachItems(out)
}

// ListAll returns every order, oldest first.
func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, user_id, total, status, payment_method, proof_url, download_link, created_at
	  FROM orders
	  ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	return r.attachItems(out)
}

func (r *OrderRepo) attachItems(orders []domain.Order) ([]domain.Order, error) {
	for i := range orders {
		if err := r.db.Select(&orders[i].Items, `
		  SELECT product_id, name, qty, price
		  FROM order_items WHERE order_id = ?
		  ORDER BY product_id
		`, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// TransitionStatus moves an order from one status to another atomically,
// optionally setting proof and download URLs. It reports whether the row
// changed: false means the order was not in the expected status (or does
// not exist), which callers treat as "someone got there first".
func (r *OrderRepo) TransitionStatus(orderID string, from, to domain.OrderStatus, proofURL, downloadLink string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders
	  SET status = ?,
	      proof_url = CASE WHEN ? != '' THEN ? ELSE proof_url END,
	      download_link = CASE WHEN ? != '' THEN ? ELSE download_link END
	  WHERE id = ? AND status = ?
	`, to, proofURL, proofURL, downloadLink, downloadLink, orderID, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
