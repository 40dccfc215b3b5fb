package services

import (
	"errors"

	"github.com/google/uuid"

	"vitrine/internal/domain"
	"vitrine/internal/repos"
)

var (
	ErrEmptyOrder    = errors.New("order has no items")
	ErrBadQuantity   = errors.New("order line quantity must be at least 1")
	ErrTotalMismatch = errors.New("submitted total does not match item sum")
)

type OrderService struct {
	Orders *repos.OrderRepo
	// CodeImageBase prefixes the escaped payment payload to form the
	// renderable code URL.
	CodeImageBase string
}

func NewOrderService(orders *repos.OrderRepo, codeImageBase string) *OrderService {
	return &OrderService{Orders: orders, CodeImageBase: codeImageBase}
}

// Place validates the draft, recomputes the total from the line snapshots
// and, if it matches the client-computed one, persists the order with a
// freshly issued payment code. A mismatch is an error, never silently
// corrected in either direction.
func (s *OrderService) Place(draft domain.OrderDraft, clientOrigin string) (domain.Order, error) {
	if len(draft.Items) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	for _, it := range draft.Items {
		if it.Qty < 1 {
			return domain.Order{}, ErrBadQuantity
		}
	}
	total := domain.SumItems(draft.Items)
	if total != draft.TotalCents {
		return domain.Order{}, ErrTotalMismatch
	}

	orderID := uuid.NewString()
	code := BuildPaymentCode(orderID, total)
	row := repos.OrderRow{
		ID:             orderID,
		CustomerName:   draft.CustomerName,
		CustomerPhone:  draft.CustomerPhone,
		CustomerEmail:  draft.CustomerEmail,
		ClientOrigin:   clientOrigin,
		TotalCents:     total,
		Status:         domain.StatusPending,
		Notes:          draft.Notes,
		PaymentCodeURL: CodeURL(s.CodeImageBase, code),
		PaymentCode:    code,
	}
	if err := s.Orders.Create(row, draft.Items); err != nil {
		return domain.Order{}, err
	}
	return s.Get(orderID)
}

// Get returns the full order representation.
func (s *OrderService) Get(orderID string) (domain.Order, error) {
	row, items, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	return toOrder(row, items), nil
}

// UpdateStatus sets a new status for an existing order. Returns false when
// the order does not exist.
func (s *OrderService) UpdateStatus(orderID, status string) (bool, error) {
	if !domain.ValidStatus(status) {
		return false, errors.New("unknown order status: " + status)
	}
	return s.Orders.UpdateStatus(orderID, status)
}

func toOrder(row repos.OrderRow, items []domain.OrderItem) domain.Order {
	return domain.Order{
		ID:             row.ID,
		CustomerName:   row.CustomerName,
		CustomerPhone:  row.CustomerPhone,
		CustomerEmail:  row.CustomerEmail,
		ClientOrigin:   row.ClientOrigin,
		Items:          items,
		TotalCents:     row.TotalCents,
		Status:         row.Status,
		Notes:          row.Notes,
		PaymentCodeURL: row.PaymentCodeURL,
		PaymentCode:    row.PaymentCode,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
