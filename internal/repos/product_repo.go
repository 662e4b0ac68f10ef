package repos

import (
	"dukkan/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, description, price, image_url, seller, type, created_at
	  FROM products
	  ORDER BY rowid
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, description, price, image_url, seller, type, created_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

// Search matches a case-insensitive substring against name and description.
func (r *ProductRepo) Search(q string) ([]domain.Product, error) {
	var out []domain.Product
	pat := "%" + q + "%"
	err := r.db.Select(&out, `
	  SELECT id, name, description, price, image_url, seller, type, created_at
	  FROM products
	  WHERE LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)
	  ORDER BY rowid
	`, pat, pat)
	return out, err
}
