package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
	"github.com/jhoicas/storefront-cart/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto; nil, nil si no hay registro.
func (r *StockRepo) Get(ctx context.Context, productID int) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, `SELECT product_id, amount FROM stock WHERE product_id = $1`, productID).
		Scan(&s.ProductID, &s.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad disponible (usado por la carga inicial del catálogo).
func (r *StockRepo) Upsert(ctx context.Context, stock entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, amount, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (product_id)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.ProductID, stock.Amount); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
