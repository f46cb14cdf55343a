package catalogfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
	"github.com/jhoicas/storefront-cart/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*Catalog)(nil)
	_ repository.StockRepository   = (*Catalog)(nil)
)

// document forma del archivo semilla (mismo formato que el db.json del storefront).
type document struct {
	Products []entity.Product `json:"products"`
	Stock    []entity.Stock   `json:"stock"`
}

// Catalog catálogo de solo lectura cargado en memoria desde un archivo JSON.
type Catalog struct {
	products []entity.Product
	byID     map[int]int
	stock    map[int]entity.Stock
}

// Load lee el archivo semilla.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse construye el catálogo desde r. Rechaza ids de producto duplicados.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}
	sort.SliceStable(doc.Products, func(i, j int) bool { return doc.Products[i].ID < doc.Products[j].ID })

	c := &Catalog{
		products: doc.Products,
		byID:     make(map[int]int, len(doc.Products)),
		stock:    make(map[int]entity.Stock, len(doc.Stock)),
	}
	for i, p := range doc.Products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("producto %d duplicado en catálogo", p.ID)
		}
		c.byID[p.ID] = i
	}
	for _, s := range doc.Stock {
		c.stock[s.ProductID] = s
	}
	return c, nil
}

// Products todos los productos ordenados por id.
func (c *Catalog) Products() []entity.Product {
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out
}

// StockLevels todos los registros de stock.
func (c *Catalog) StockLevels() []entity.Stock {
	out := make([]entity.Stock, 0, len(c.stock))
	for _, s := range c.stock {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// GetByID implementa repository.ProductRepository.
func (c *Catalog) GetByID(_ context.Context, id int) (*entity.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, nil
	}
	p := c.products[i]
	return &p, nil
}

// List implementa repository.ProductRepository.
func (c *Catalog) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	if offset >= len(c.products) {
		return nil, nil
	}
	end := offset + limit
	if end > len(c.products) {
		end = len(c.products)
	}
	out := make([]*entity.Product, 0, end-offset)
	for i := offset; i < end; i++ {
		p := c.products[i]
		out = append(out, &p)
	}
	return out, nil
}

// Get implementa repository.StockRepository.
func (c *Catalog) Get(_ context.Context, productID int) (*entity.Stock, error) {
	s, ok := c.stock[productID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
