package repository

import (
	"context"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo (servicio de inventario).
// GetByID devuelve nil, nil si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
