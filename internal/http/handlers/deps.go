package handlers

import (
	"dukkan/internal/config"
	"dukkan/internal/repos"
	"dukkan/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	StoreHandler *StoreHandler
	CartHandler  *CartHandler
	OrderHandler *OrderHandler
	AdminHandler *AdminHandler

	Sim *services.TransferSimulator
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	sim := services.NewTransferSimulator(orderRepo, cfg.TransferDelay)

	catalogSvc := services.NewCatalogService(prodRepo)
	catalogSvc.Delay = cfg.MockLatency
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	cartSvc.Delay = cfg.MockLatency
	orderSvc := services.NewOrderService(cartRepo, orderRepo, userRepo, sim)
	orderSvc.Delay = cfg.MockLatency

	return &Deps{
		StoreHandler: &StoreHandler{Catalog: catalogSvc},
		CartHandler:  &CartHandler{Cart: cartSvc},
		OrderHandler: &OrderHandler{Cart: cartSvc, Order: orderSvc, Auth: auth},
		AdminHandler: &AdminHandler{Order: orderSvc},
		Sim:          sim,
	}
}
