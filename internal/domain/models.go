package domain

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	ImageURL    string  `db:"image_url"`
	Seller      string  `db:"seller"`
	Type        string  `db:"type"` // ebook | template | assets | course
	CreatedAt   string  `db:"created_at"`
}

// CartItem is a single cart line: the product as it looked when added,
// plus the quantity. PriceAtAdd is frozen so later catalog edits do not
// move a cart (or an order built from it) under the buyer.
type CartItem struct {
	ProductID  string  `db:"product_id"`
	Name       string  `db:"name"`
	Qty        int     `db:"qty"`
	PriceAtAdd float64 `db:"price_at_add"`
}

func (ci CartItem) Subtotal() float64 { return ci.PriceAtAdd * float64(ci.Qty) }
