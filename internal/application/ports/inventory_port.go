package ports

import (
	"context"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// InventoryService puerto de salida hacia el servicio remoto de productos/stock.
// Cualquier adaptador (HTTP, mock en tests) debe implementarlo.
// Errores esperados: domain.ErrProductNotFound si el id no existe y
// domain.ErrInventoryUnavailable ante fallas de red o respuestas inesperadas.
type InventoryService interface {
	// GetStock consulta el stock actual; nunca se cachea.
	GetStock(ctx context.Context, productID int) (entity.Stock, error)
	// GetProduct obtiene los atributos del producto para una línea nueva.
	GetProduct(ctx context.Context, productID int) (entity.Product, error)
}
