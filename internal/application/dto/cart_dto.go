package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// UpdateAmountRequest entrada de PUT /api/cart/items/{id}.
type UpdateAmountRequest struct {
	Amount int `json:"amount"`
}

// CartResponse carrito con totales. Items conserva el formato persistido (producto + amount).
type CartResponse struct {
	Items     []entity.LineItem `json:"items"`
	Lines     int               `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotals []decimal.Decimal `json:"subtotals"`
	Total     decimal.Decimal   `json:"total"`
}

// StockIssueResponse línea que excede el stock actual.
type StockIssueResponse struct {
	ProductID int    `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Message   string `json:"message"`
}

// ValidateCartResponse salida de POST /api/cart/validate.
type ValidateCartResponse struct {
	Valid  bool                 `json:"valid"`
	Issues []StockIssueResponse `json:"issues"`
}
