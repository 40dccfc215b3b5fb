package domain

// Order status values. Stored lowercase; the client side treats them as
// opaque strings and only branches for UI routing.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFulfilled, StatusCancelled:
		return true
	}
	return false
}

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

// Product is catalog-owned; the core reads it and never mutates it.
// Prices are integer minor units (cents) so totals stay exact.
type Product struct {
	ID            string `db:"id" json:"id"`
	CategoryID    string `db:"category_id" json:"category_id,omitempty"`
	Name          string `db:"name" json:"name"`
	Description   string `db:"description" json:"description,omitempty"`
	PriceCents    int64  `db:"price_cents" json:"price_cents"`
	OriginalCents int64  `db:"original_cents" json:"original_cents,omitempty"` // pre-discount price, 0 when none
	ImageURL      string `db:"image_url" json:"image_url,omitempty"`
	Featured      bool   `db:"featured" json:"featured"`
	Active        bool   `db:"active" json:"active"`
	StockQty      int    `db:"stock_qty" json:"stock_qty"`
}

// CartItem pairs a product snapshot with a positive quantity.
type CartItem struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
}

// SubtotalCents is the line total: unit price times quantity.
func (it CartItem) SubtotalCents() int64 {
	return it.Product.PriceCents * int64(it.Qty)
}

// OrderItem is the immutable per-line snapshot captured at submission time.
type OrderItem struct {
	ProductID      string `db:"product_id" json:"product_id"`
	Name           string `db:"name" json:"name"`
	UnitPriceCents int64  `db:"unit_price_cents" json:"unit_price_cents"`
	Qty            int    `db:"qty" json:"qty"`
}

func (it OrderItem) SubtotalCents() int64 {
	return it.UnitPriceCents * int64(it.Qty)
}

// SumItems recomputes an order total from its line snapshots.
func SumItems(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.SubtotalCents()
	}
	return total
}

// OrderDraft is the creation payload the checkout orchestrator posts.
// TotalCents is the client-computed total; the backend recomputes it from
// Items and rejects the draft on mismatch rather than trusting either side.
type OrderDraft struct {
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"total_cents"`
}

// Order is the backend representation returned after creation and on
// status fetches. PaymentCode is the copy-paste payload; PaymentCodeURL
// points at a renderable visual code for the same instruction.
type Order struct {
	ID             string      `json:"id"`
	CustomerName   string      `json:"customer_name,omitempty"`
	CustomerPhone  string      `json:"customer_phone,omitempty"`
	CustomerEmail  string      `json:"customer_email,omitempty"`
	ClientOrigin   string      `json:"client_origin,omitempty"`
	Items          []OrderItem `json:"items"`
	TotalCents     int64       `json:"total_cents"`
	Status         string      `json:"status"`
	Notes          string      `json:"notes,omitempty"`
	PaymentCodeURL string      `json:"payment_code_url,omitempty"`
	PaymentCode    string      `json:"payment_code,omitempty"`
	CreatedAt      string      `json:"created_at"`
	UpdatedAt      string      `json:"updated_at,omitempty"`
}

// VisitSession identifies one anonymous browsing session for telemetry.
// The id only needs uniqueness, not unforgeability.
type VisitSession struct {
	ID        string `json:"session_id"`
	PageURL   string `json:"page_url"`
	UserAgent string `json:"user_agent"`
}
