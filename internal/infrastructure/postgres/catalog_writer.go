package postgres

import (
	"context"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// CatalogWriter agrupa los upserts de productos y stock sobre un mismo Querier (pool o tx).
type CatalogWriter struct {
	products *ProductRepo
	stock    *StockRepo
}

// NewCatalogWriter construye el writer. Pasar una tx para que la importación sea atómica.
func NewCatalogWriter(q Querier) *CatalogWriter {
	return &CatalogWriter{products: NewProductRepository(q), stock: NewStockRepository(q)}
}

// UpsertProduct inserta o reemplaza un producto.
func (w *CatalogWriter) UpsertProduct(ctx context.Context, p entity.Product) error {
	return w.products.Upsert(ctx, p)
}

// UpsertStock inserta o reemplaza el stock de un producto.
func (w *CatalogWriter) UpsertStock(ctx context.Context, s entity.Stock) error {
	return w.stock.Upsert(ctx, s)
}
