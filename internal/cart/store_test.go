package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/cart"
	"vitrine/internal/domain"
)

func moka() domain.Product {
	return domain.Product{ID: "moka-3cup", Name: "Moka Pot 3-Cup", PriceCents: 2990}
}

func cup() domain.Product {
	return domain.Product{ID: "cup-terra", Name: "Terracotta Cup", PriceCents: 1500}
}

func TestStore_TotalsAndCount(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 2)
	s.AddItem(cup(), 1)

	assert.Equal(t, int64(7480), s.TotalCents())
	assert.Equal(t, 3, s.ItemCount())
	assert.Equal(t, 2, s.Len())
}

func TestStore_AddMergesSameProduct(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 1)
	s.AddItem(moka(), 2)

	require.Equal(t, 1, s.Len(), "at most one entry per product id")
	assert.Equal(t, 3, s.ItemCount())
	assert.Equal(t, int64(3*2990), s.TotalCents())
}

func TestStore_AddRejectsNonPositiveQty(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 0)
	s.AddItem(moka(), -3)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(0), s.TotalCents())
}

func TestStore_UpdateQuantityRemovesAtZeroOrBelow(t *testing.T) {
	for _, qty := range []int{0, -1} {
		s := cart.NewStore()
		s.AddItem(moka(), 2)
		s.UpdateQuantity("moka-3cup", qty)

		assert.Equal(t, 0, s.Len(), "qty %d must remove the item", qty)
	}
}

func TestStore_UpdateQuantitySets(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 1)
	s.UpdateQuantity("moka-3cup", 5)

	assert.Equal(t, 5, s.ItemCount())
	// Unknown id is a no-op
	s.UpdateQuantity("ghost", 3)
	assert.Equal(t, 1, s.Len())
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 1)
	s.AddItem(cup(), 1)

	s.RemoveItem("moka-3cup")
	s.RemoveItem("moka-3cup") // absent: no-op, no panic
	s.RemoveItem("never-there")

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "cup-terra", s.Items()[0].Product.ID)
}

func TestStore_RemoveKeepsOrderAndIndex(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 1)
	s.AddItem(cup(), 1)
	s.AddItem(domain.Product{ID: "beans-750", PriceCents: 4200}, 1)

	s.RemoveItem("moka-3cup")
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "cup-terra", items[0].Product.ID)
	assert.Equal(t, "beans-750", items[1].Product.ID)

	// Index must still resolve after the shift
	s.UpdateQuantity("beans-750", 4)
	assert.Equal(t, int64(1500+4*4200), s.TotalCents())
}

func TestStore_ClearEmpties(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 2)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(0), s.TotalCents())
	assert.Equal(t, 0, s.ItemCount())
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(moka(), 2)

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(5980), domain.SumItems(snap))

	// Mutations after snapshotting must not alter the snapshot
	s.UpdateQuantity("moka-3cup", 9)
	s.AddItem(cup(), 1)
	assert.Equal(t, 2, snap[0].Qty)
	assert.Equal(t, int64(5980), domain.SumItems(snap))
}
