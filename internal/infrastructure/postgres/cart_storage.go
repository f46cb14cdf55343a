package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storefront-cart/internal/domain/repository"
)

var _ repository.CartStorage = (*CartStorage)(nil)

// CartStorage snapshots de carrito en la tabla cart_snapshots (clave -> JSON).
type CartStorage struct {
	q Querier
}

// NewCartStorage construye el adaptador. Pasar pool o tx (Querier).
func NewCartStorage(q Querier) *CartStorage {
	return &CartStorage{q: q}
}

// Get lee el snapshot de key.
func (s *CartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRow(ctx, `SELECT value FROM cart_snapshots WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get cart snapshot: %w", err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el snapshot de key.
func (s *CartStorage) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO cart_snapshots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert cart snapshot: %w", err)
	}
	return nil
}

// Delete borra el snapshot de key.
func (s *CartStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM cart_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
