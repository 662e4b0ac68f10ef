package services

import (
	"database/sql"
	"strings"
	"time"

	"dukkan/internal/domain"
	"dukkan/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	Delay time.Duration
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	pause(s.Delay)
	return s.Prods.List()
}

// Search filters by case-insensitive substring over name and description.
// A blank query returns the whole catalog.
func (s *CatalogService) Search(q string) ([]domain.Product, error) {
	pause(s.Delay)
	q = strings.TrimSpace(q)
	if q == "" {
		return s.Prods.List()
	}
	return s.Prods.Search(q)
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	pause(s.Delay)
	p, err := s.Prods.Get(id)
	if err == sql.ErrNoRows {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}
