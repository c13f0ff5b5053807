package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(imei string, cost, sale float64) CartLine {
	return CartLine{
		ProductID: uuid.New(),
		Name:      "iPhone 15",
		IMEI:      imei,
		CostPrice: cost,
		SalePrice: sale,
	}
}

func TestCartAddAndTotals(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(line("111111111111111", 800, 1000)))
	require.NoError(t, c.Add(line("222222222222222", 600, 750)))

	assert.Len(t, c.Lines(), 2)
	assert.Equal(t, 1750.0, c.TotalSale())
	assert.Equal(t, 350.0, c.TotalProfit())
}

func TestCartRejectsDuplicateIMEI(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(line("111111111111111", 800, 1000)))

	err := c.Add(line("111111111111111", 800, 950))
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Len(t, c.Lines(), 1)
}

func TestCartRemove(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(line("111111111111111", 800, 1000)))
	require.NoError(t, c.Add(line("222222222222222", 600, 750)))

	c.Remove("111111111111111")
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "222222222222222", lines[0].IMEI)

	// Removing an absent IMEI is a no-op.
	c.Remove("999999999999999")
	assert.Len(t, c.Lines(), 1)
}

func TestCartCheckoutIsExclusive(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(line("111111111111111", 800, 1000)))

	snapshot, err := c.BeginCheckout()
	require.NoError(t, err)
	assert.Len(t, snapshot, 1)

	_, err = c.BeginCheckout()
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	c.EndCheckout()
	_, err = c.BeginCheckout()
	assert.NoError(t, err)
}

func TestCartSnapshotIsDetached(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(line("111111111111111", 800, 1000)))

	snapshot, err := c.BeginCheckout()
	require.NoError(t, err)
	c.EndCheckout()
	c.Clear()

	// Clearing the cart must not disturb an already taken snapshot.
	assert.Len(t, snapshot, 1)
	assert.Empty(t, c.Lines())
}
