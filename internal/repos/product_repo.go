package repos

import (
	"github.com/jmoiron/sqlx"

	"vitrine/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, COALESCE(category_id,'') AS category_id, name, COALESCE(description,'') AS description,
  price_cents, original_cents, COALESCE(image_url,'') AS image_url,
  featured, active, stock_qty`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// List returns active products, optionally filtered by category.
func (r *ProductRepo) List(categoryID string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	if categoryID != "" {
		err := r.db.Select(&out, `
		  SELECT `+productCols+` FROM products
		  WHERE active = 1 AND category_id = ?
		  ORDER BY featured DESC, name
		  LIMIT ? OFFSET ?`, categoryID, limit, offset)
		return out, err
	}
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE active = 1
	  ORDER BY featured DESC, name
	  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}
