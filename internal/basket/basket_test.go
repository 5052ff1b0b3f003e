package basket

import (
	"testing"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 10, Name: "Tea", Price: 20, CategoryID: 1, IsAvailable: true},
		{ID: 11, Name: "Samosa", Price: 15.5, CategoryID: 2, IsAvailable: true},
	}
}

func TestAddItem_NewLine(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())

	require.NoError(t, b.AddItem(10))

	lines := b.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Tea", lines[0].Item.Name)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddItem_SameItemTwice_AccumulatesQuantity(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())

	require.NoError(t, b.AddItem(10))
	require.NoError(t, b.AddItem(10))

	// One line with quantity 2, never two lines for the same item.
	require.Equal(t, 1, b.LineCount())
	assert.Equal(t, 2, b.ItemCount())
	assert.Equal(t, 2, b.Lines()[0].Quantity)
}

func TestAddItem_NotInSnapshot(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())

	err := b.AddItem(999)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, 0, b.LineCount())
}

func TestAddItem_EmptySnapshot(t *testing.T) {
	b := New()

	err := b.AddItem(10)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestChangeQuantity_Increment(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())
	require.NoError(t, b.AddItem(10))

	require.NoError(t, b.ChangeQuantity(10, 1))
	assert.Equal(t, 2, b.Lines()[0].Quantity)
}

func TestChangeQuantity_DropToZero_RemovesLine(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())
	require.NoError(t, b.AddItem(10))
	require.NoError(t, b.AddItem(10))

	require.NoError(t, b.ChangeQuantity(10, -2))

	assert.Equal(t, 0, b.LineCount())
	assert.Empty(t, b.Lines())

	// The line is gone, so further quantity changes must fail.
	assert.ErrorIs(t, b.ChangeQuantity(10, 1), ErrLineNotFound)
	assert.ErrorIs(t, b.ChangeQuantity(10, -1), ErrLineNotFound)
}

func TestChangeQuantity_BelowZero_RemovesLine(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())
	require.NoError(t, b.AddItem(10))

	require.NoError(t, b.ChangeQuantity(10, -5))
	assert.Equal(t, 0, b.LineCount())
}

func TestChangeQuantity_LineNotFound(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())

	assert.ErrorIs(t, b.ChangeQuantity(10, 1), ErrLineNotFound)
}

func TestTotal_SnapshotPricing(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())
	require.NoError(t, b.AddItem(10))
	require.NoError(t, b.AddItem(10))

	assert.Equal(t, 40.0, b.Total())

	// A later catalog price change must not affect lines already added.
	b.Refresh([]domain.MenuItem{
		{ID: 10, Name: "Tea", Price: 99, CategoryID: 1, IsAvailable: true},
	})
	assert.Equal(t, 40.0, b.Total())

	// New additions of the same item still use the old line's snapshot.
	require.NoError(t, b.AddItem(10))
	assert.Equal(t, 60.0, b.Total())
}

func TestTotal_Rounding(t *testing.T) {
	b := New()
	b.Refresh([]domain.MenuItem{{ID: 1, Name: "Chai", Price: 10.333, IsAvailable: true}})
	require.NoError(t, b.AddItem(1))
	require.NoError(t, b.AddItem(1))
	require.NoError(t, b.AddItem(1))

	assert.Equal(t, 31.0, b.Total())
}

func TestTotal_AfterRemoval_NoStaleLines(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())
	require.NoError(t, b.AddItem(10))
	require.NoError(t, b.AddItem(11))
	require.NoError(t, b.ChangeQuantity(10, -1))

	assert.Equal(t, 15.5, b.Total())
	assert.Equal(t, 1, b.LineCount())
}

func TestCounts_MixedOperations(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())

	require.NoError(t, b.AddItem(10))
	require.NoError(t, b.AddItem(10))
	require.NoError(t, b.AddItem(11))
	require.NoError(t, b.ChangeQuantity(11, 3))

	assert.Equal(t, 2, b.LineCount())
	assert.Equal(t, 6, b.ItemCount())

	require.NoError(t, b.ChangeQuantity(10, -2))
	assert.Equal(t, 1, b.LineCount())
	assert.Equal(t, 4, b.ItemCount())

	for _, line := range b.Lines() {
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}
}

func TestLines_ReturnsCopy(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())
	require.NoError(t, b.AddItem(10))

	lines := b.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, b.Lines()[0].Quantity)
}

func TestClear(t *testing.T) {
	b := New()
	b.Refresh(testCatalog())
	require.NoError(t, b.AddItem(10))

	b.Clear()

	assert.Equal(t, 0, b.LineCount())
	assert.Equal(t, 0.0, b.Total())

	// Snapshot survives a clear; items can be re-added.
	require.NoError(t, b.AddItem(10))
	assert.Equal(t, 1, b.LineCount())
}
