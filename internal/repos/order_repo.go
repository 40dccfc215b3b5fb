package repos

import (
	"github.com/jmoiron/sqlx"

	"vitrine/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID             string `db:"id"`
	CustomerName   string `db:"customer_name"`
	CustomerPhone  string `db:"customer_phone"`
	CustomerEmail  string `db:"customer_email"`
	ClientOrigin   string `db:"client_origin"`
	TotalCents     int64  `db:"total_cents"`
	Status         string `db:"status"`
	Notes          string `db:"notes"`
	PaymentCodeURL string `db:"payment_code_url"`
	PaymentCode    string `db:"payment_code"`
	CreatedAt      string `db:"created_at"`
	UpdatedAt      string `db:"updated_at"`
}

// Create inserts the order header and its line snapshots in one transaction.
func (r *OrderRepo) Create(o OrderRow, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, customer_name, customer_phone, customer_email, client_origin,
	     total_cents, status, notes, payment_code_url, payment_code, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.CustomerName, o.CustomerPhone, o.CustomerEmail, o.ClientOrigin,
		o.TotalCents, o.Status, o.Notes, o.PaymentCodeURL, o.PaymentCode); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, unit_price_cents, qty)
		  VALUES(?,?,?,?,?)
		`, o.ID, it.ProductID, it.Name, it.UnitPriceCents, it.Qty); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []domain.OrderItem, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, COALESCE(customer_name,'') AS customer_name,
		       COALESCE(customer_phone,'') AS customer_phone,
		       COALESCE(customer_email,'') AS customer_email,
		       COALESCE(client_origin,'') AS client_origin,
		       total_cents, status, COALESCE(notes,'') AS notes,
		       COALESCE(payment_code_url,'') AS payment_code_url,
		       COALESCE(payment_code,'') AS payment_code,
		       created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []domain.OrderItem
	if err := r.db.Select(&items, `
		SELECT product_id, name, unit_price_cents, qty
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT id, COALESCE(customer_name,'') AS customer_name,
		       COALESCE(customer_phone,'') AS customer_phone,
		       COALESCE(customer_email,'') AS customer_email,
		       COALESCE(client_origin,'') AS client_origin,
		       total_cents, status, COALESCE(notes,'') AS notes,
		       COALESCE(payment_code_url,'') AS payment_code_url,
		       COALESCE(payment_code,'') AS payment_code,
		       created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
