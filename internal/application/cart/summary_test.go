package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-cart/internal/application/cart"
	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/localstore"
)

func TestSummary_Totales(t *testing.T) {
	inv := newFakeInventory().withProduct(1, "A", "179.90", 9).withProduct(2, "B", "139.90", 9)
	st := localstore.NewMemoryStorage()
	seedCart(t, st, line(inv, 1, 2), line(inv, 2, 1))
	s := openState(t, inv, st, cart.Options{})

	sum := s.Summary()

	assert.Equal(t, 2, sum.Lines)
	assert.Equal(t, 3, sum.ItemCount)
	assert.True(t, decimal.RequireFromString("499.70").Equal(sum.Total), "total: %s", sum.Total)
	assert.True(t, decimal.RequireFromString("359.80").Equal(sum.Items[0].Subtotal()))
}

func TestValidateStock_DevuelveLineasExcedidas(t *testing.T) {
	inv := newFakeInventory().
		withProduct(1, "A", "1", 5).
		withProduct(2, "B", "1", 5).
		withProduct(3, "C", "1", 5)
	st := localstore.NewMemoryStorage()
	seedCart(t, st, line(inv, 3, 4), line(inv, 1, 2), line(inv, 2, 3))
	s := openState(t, inv, st, cart.Options{})
	inv.stock[3] = 1
	inv.stock[2] = 0

	issues, err := s.ValidateStock(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []cart.StockIssue{
		{ProductID: 2, Requested: 3, Available: 0},
		{ProductID: 3, Requested: 4, Available: 1},
	}, issues)
	assert.Len(t, s.Items(), 3, "validar no modifica el carrito")
}

func TestValidateStock_PropagaFallaDeInventario(t *testing.T) {
	inv := newFakeInventory().withProduct(1, "A", "1", 5)
	st := localstore.NewMemoryStorage()
	seedCart(t, st, line(inv, 1, 1))
	s := openState(t, inv, st, cart.Options{})
	inv.fail = domain.ErrInventoryUnavailable

	_, err := s.ValidateStock(context.Background())
	assert.ErrorIs(t, err, domain.ErrInventoryUnavailable)
}

func TestValidateStock_CarritoVacio(t *testing.T) {
	s := openState(t, newFakeInventory(), localstore.NewMemoryStorage(), cart.Options{})

	issues, err := s.ValidateStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)
}
