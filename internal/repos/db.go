package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer, and a :memory: DSN is per-connection;
	// one pooled connection keeps every caller on the same database.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed users, catalog and a couple of historical orders so the admin
	// panel has material on first boot (idempotent; safe on every start).
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	if err := seedOrders(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Products (read-only digital-goods catalog)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT,
  seller TEXT NOT NULL,
  type TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_type ON products(type);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  total NUMERIC NOT NULL,
  status TEXT NOT NULL CHECK (status IN
    ('PENDING_PAYMENT','PENDING_CONFIRMATION','COMPLETED','FAILED','CANCELLED')),
  payment_method TEXT NOT NULL CHECK (payment_method IN ('card','bank_transfer')),
  proof_url TEXT NOT NULL DEFAULT '',
  download_link TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  seq INTEGER                         -- insertion order for history listings
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_seq  ON orders(seq);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,                 -- snapshot, not a join to products
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the fixed accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@dukkan.test", "Admin", "ADMIN", "Passw0rd!"),
		mk("u-sara", "sara@dukkan.test", "Sara", "USER", "Passw0rd!"),
		mk("u-omar", "omar@dukkan.test", "Omar", "USER", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,description,price,image_url,seller,type) VALUES
	  ('prod-cookbook','Digital Cookbook','50 healthy, easy recipes for beginners and pros alike.',
	   15.99,'/media/products/cookbook.jpg','Sara''s Kitchen','ebook'),
	  ('prod-portfolio','Portfolio Site Template','Modern, responsive HTML/CSS template to showcase your work.',
	   25.00,'/media/products/portfolio.jpg','Clean Code Co','template'),
	  ('prod-icons','Artistic Icon Pack','200+ high-quality SVG icons with a simple, consistent look.',
	   9.50,'/media/products/icons.jpg','Pixel Art','assets'),
	  ('prod-uxcourse','UX/UI Design Course','Learn the fundamentals of user experience and interface design.',
	   79.99,'/media/products/uxcourse.jpg','Design Academy','course')`)
	return tx.Commit()
}

// seedOrders inserts two historical orders for the first buyer: a completed
// card purchase and a bank transfer awaiting admin confirmation.
func seedOrders(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO orders(id,user_id,total,status,payment_method,proof_url,download_link,created_at,seq) VALUES
	  ('ord-seed-1','u-sara',15.99,'COMPLETED','card','','/downloads/ord-seed-1','2023-10-26T10:00:00Z',1),
	  ('ord-seed-2','u-sara',44.00,'PENDING_CONFIRMATION','bank_transfer','/proofs/ord-seed-2.png','','2023-10-27T14:30:00Z',2)`)
	tx.MustExec(`INSERT INTO order_items(order_id,product_id,name,qty,price) VALUES
	  ('ord-seed-1','prod-cookbook','Digital Cookbook',1,15.99),
	  ('ord-seed-2','prod-portfolio','Portfolio Site Template',1,25.00),
	  ('ord-seed-2','prod-icons','Artistic Icon Pack',2,9.50)`)
	return tx.Commit()
}
