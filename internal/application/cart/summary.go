package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// validateConcurrency máximo de consultas de stock simultáneas en ValidateStock.
const validateConcurrency = 4

// Summary vista del carrito para la página del carrito y el badge del header.
type Summary struct {
	Items     entity.Cart
	Lines     int
	ItemCount int
	Total     decimal.Decimal
}

// StockIssue línea cuya cantidad ya no cabe en el stock actual.
type StockIssue struct {
	ProductID int
	Requested int
	Available int
}

// Summary calcula totales sobre una copia del carrito.
func (s *State) Summary() Summary {
	items := s.Items()
	return Summary{
		Items:     items,
		Lines:     len(items),
		ItemCount: items.ItemCount(),
		Total:     items.Total(),
	}
}

// ValidateStock vuelve a consultar el stock de todas las líneas y devuelve las que lo
// exceden, ordenadas por producto. No modifica el carrito. Falla con el primer error
// de inventario.
func (s *State) ValidateStock(ctx context.Context) ([]StockIssue, error) {
	items := s.Items()

	var (
		mu     sync.Mutex
		issues []StockIssue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(validateConcurrency)
	for _, item := range items {
		g.Go(func() error {
			stock, err := s.inventory.GetStock(gctx, item.ID)
			if err != nil {
				return err
			}
			if !stock.Allows(item.Amount) {
				mu.Lock()
				issues = append(issues, StockIssue{ProductID: item.ID, Requested: item.Amount, Available: stock.Amount})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].ProductID < issues[j].ProductID })
	return issues, nil
}
