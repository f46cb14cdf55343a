package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem línea del carrito: un producto y su cantidad (siempre > 0).
// En JSON es el objeto del producto con el campo amount agregado.
type LineItem struct {
	Product
	Amount int
}

// Subtotal precio unitario por cantidad.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price().Mul(decimal.NewFromInt(int64(l.Amount)))
}

// MarshalJSON se define explícitamente para no heredar el de Product y perder amount.
func (l LineItem) MarshalJSON() ([]byte, error) {
	fields := l.Product.fields()
	fields[keyAmount] = json.RawMessage(fmt.Sprintf("%d", l.Amount))
	return json.Marshal(fields)
}

// UnmarshalJSON lee el producto y la cantidad.
func (l *LineItem) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	amount, err := intField(fields, keyAmount)
	if err != nil {
		return err
	}
	if err := l.Product.UnmarshalJSON(data); err != nil {
		return err
	}
	l.Amount = amount
	return nil
}
