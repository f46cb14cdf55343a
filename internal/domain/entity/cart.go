package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cart líneas del carrito en orden de inserción. Como máximo una línea por producto.
// Los métodos que modifican devuelven una copia: el carrito recibido nunca se altera,
// así un commit fallido no deja estado a medias.
type Cart []LineItem

// Index posición de la línea del producto, -1 si no está.
func (c Cart) Index(productID int) int {
	for i, item := range c {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Find devuelve la línea del producto.
func (c Cart) Find(productID int) (LineItem, bool) {
	if i := c.Index(productID); i >= 0 {
		return c[i], true
	}
	return LineItem{}, false
}

// Contains indica si el producto tiene línea.
func (c Cart) Contains(productID int) bool {
	return c.Index(productID) >= 0
}

// Clone copia superficial de las líneas (los atributos son inmutables una vez cargados).
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Append agrega una línea nueva al final.
func (c Cart) Append(item LineItem) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, item)
}

// WithAmount fija la cantidad de la línea del producto; las demás quedan iguales.
func (c Cart) WithAmount(productID, amount int) Cart {
	out := c.Clone()
	if i := out.Index(productID); i >= 0 {
		out[i].Amount = amount
	}
	return out
}

// Without quita la línea del producto.
func (c Cart) Without(productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID != productID {
			out = append(out, item)
		}
	}
	return out
}

// ItemCount suma de cantidades.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c {
		n += item.Amount
	}
	return n
}

// Total suma de subtotales.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Validate verifica unicidad por producto y cantidades positivas.
func (c Cart) Validate() error {
	seen := make(map[int]struct{}, len(c))
	for _, item := range c {
		if item.Amount <= 0 {
			return fmt.Errorf("producto %d: cantidad %d no positiva", item.ID, item.Amount)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("producto %d duplicado", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
