// Package cart holds the in-memory cart for the current visit: pure state
// plus derived totals. It never talks to the network; checkout consumes a
// snapshot of it.
package cart

import (
	"sync"

	"vitrine/internal/domain"
)

// Store keeps an ordered sequence of cart items with at most one entry per
// product id. It is safe for concurrent use, though callers are expected to
// funnel mutations through UI event handling one at a time.
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
	index map[string]int // product id -> position in items
}

func NewStore() *Store {
	return &Store{index: map[string]int{}}
}

// AddItem inserts the product or increments its existing quantity.
// A qty <= 0 is a no-op by contract (not clamped).
func (s *Store) AddItem(p domain.Product, qty int) {
	if qty <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[p.ID]; ok {
		s.items[i].Qty += qty
		return
	}
	s.index[p.ID] = len(s.items)
	s.items = append(s.items, domain.CartItem{Product: p, Qty: qty})
}

// UpdateQuantity sets the quantity for a product. A quantity <= 0 removes
// the item; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[productID]; ok {
		s.items[i].Qty = qty
	}
}

// RemoveItem removes a product; removing an absent id is a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[productID]
	if !ok {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, productID)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Product.ID] = j
	}
}

// Clear empties the cart; used after a confirmed checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = map[string]int{}
}

// TotalCents sums price times quantity over current entries.
func (s *Store) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.SubtotalCents()
	}
	return total
}

// ItemCount is the sum of quantities, not the number of lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Qty
	}
	return n
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the current lines in insertion order. Mutating
// the copy does not affect the store.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot captures the cart as immutable order-line snapshots for an
// order draft. Later cart mutations do not alter the snapshot.
func (s *Store) Snapshot() []domain.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.OrderItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, domain.OrderItem{
			ProductID:      it.Product.ID,
			Name:           it.Product.Name,
			UnitPriceCents: it.Product.PriceCents,
			Qty:            it.Qty,
		})
	}
	return out
}
