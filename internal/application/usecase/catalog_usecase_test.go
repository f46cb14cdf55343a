package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-cart/internal/application/dto"
	"github.com/jhoicas/storefront-cart/internal/application/usecase"
	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/domain/entity"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/catalogfile"
)

const seed = `{
  "products": [
    {"id": 1, "title": "Tênis de Caminhada Leve", "price": 179.9, "image": "https://img/1.jpg"},
    {"id": 2, "title": "Tênis VR Caminhada", "price": 139.9, "image": "https://img/2.jpg"},
    {"id": 3, "title": "Tênis Adidas Duramo", "price": 219.9, "image": "https://img/3.jpg"}
  ],
  "stock": [
    {"id": 1, "amount": 3},
    {"id": 2, "amount": 5}
  ]
}`

func newCatalogUC(t *testing.T) (*usecase.CatalogUseCase, *catalogfile.Catalog) {
	t.Helper()
	c, err := catalogfile.Parse(strings.NewReader(seed))
	require.NoError(t, err)
	return usecase.NewCatalogUseCase(c, c), c
}

func TestCatalog_GetProduct(t *testing.T) {
	uc, _ := newCatalogUC(t)

	p, err := uc.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Tênis VR Caminhada", p.Title())

	_, err = uc.GetProduct(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_GetStock(t *testing.T) {
	uc, _ := newCatalogUC(t)
	ctx := context.Background()

	s, err := uc.GetStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.StockResponse{ID: 1, Amount: 3}, *s)

	s, err = uc.GetStock(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Amount, "producto sin registro de stock tiene 0")

	_, err = uc.GetStock(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_ListAplicaPaginaPorDefecto(t *testing.T) {
	uc, _ := newCatalogUC(t)

	out, err := uc.List(context.Background(), dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 100, out.Page.Limit)
}

type recordingWriter struct {
	products []int
	stock    []int
	failOn   int
}

func (w *recordingWriter) UpsertProduct(_ context.Context, p entity.Product) error {
	if p.ID == w.failOn {
		return errors.New("falla simulada")
	}
	w.products = append(w.products, p.ID)
	return nil
}

func (w *recordingWriter) UpsertStock(_ context.Context, s entity.Stock) error {
	w.stock = append(w.stock, s.ProductID)
	return nil
}

func TestImportCatalog(t *testing.T) {
	_, c := newCatalogUC(t)
	w := &recordingWriter{}

	n, err := usecase.ImportCatalog(context.Background(), c.Products(), c.StockLevels(), w)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3}, w.products)
	assert.Equal(t, []int{1, 2}, w.stock)
}

func TestImportCatalog_PropagaError(t *testing.T) {
	_, c := newCatalogUC(t)
	w := &recordingWriter{failOn: 2}

	_, err := usecase.ImportCatalog(context.Background(), c.Products(), c.StockLevels(), w)
	assert.Error(t, err)
	assert.Empty(t, w.stock)
}
