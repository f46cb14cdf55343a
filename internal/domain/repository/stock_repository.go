package repository

import (
	"context"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// StockRepository define el puerto para consultar stock por producto.
// Get devuelve nil, nil si el producto no tiene registro de stock.
type StockRepository interface {
	Get(ctx context.Context, productID int) (*entity.Stock, error)
}
