package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
	"github.com/jhoicas/storefront-cart/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de lectura del catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, title, price, image, attributes`

// GetByID obtiene un producto por ID; nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos por id con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// scanProduct arma el producto: columnas fijas más los atributos libres de la columna JSONB.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		id    int
		title string
		price decimal.Decimal
		image string
		extra map[string]json.RawMessage
	)
	if err := row.Scan(&id, &title, &price, &image, &extra); err != nil {
		return nil, err
	}
	p := entity.NewProduct(id, title, price, image)
	for k, v := range extra {
		if _, fixed := p.Attributes[k]; !fixed {
			p.Attributes[k] = v
		}
	}
	return &p, nil
}

// Upsert inserta o reemplaza un producto. Los atributos fuera de title/price/image van a la columna JSONB.
func (r *ProductRepo) Upsert(ctx context.Context, p entity.Product) error {
	extra := make(map[string]json.RawMessage, len(p.Attributes))
	for k, v := range p.Attributes {
		switch k {
		case "title", "price", "image":
		default:
			extra[k] = v
		}
	}
	query := `
		INSERT INTO products (id, title, price, image, attributes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET title = EXCLUDED.title, price = EXCLUDED.price, image = EXCLUDED.image, attributes = EXCLUDED.attributes`
	if _, err := r.q.Exec(ctx, query, p.ID, p.Title(), p.Price(), p.Image(), extra); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}
