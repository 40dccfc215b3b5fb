package handlers

import (
	"github.com/jmoiron/sqlx"

	"vitrine/internal/config"
	"vitrine/internal/repos"
	"vitrine/internal/services"
)

type Deps struct {
	SessionHandler *SessionHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
	CatalogHandler *CatalogHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	sessRepo := repos.NewSessionRepo(db)

	orderSvc := services.NewOrderService(orderRepo, cfg.CodeImageBase)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)

	return &Deps{
		SessionHandler: &SessionHandler{Sessions: sessRepo},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		AdminHandler:   &AdminHandler{Orders: orderSvc, PasswordHash: cfg.AdminPasswordHash},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
	}
}
