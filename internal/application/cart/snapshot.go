package cart

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// EncodeSnapshot serializa el carrito como arreglo JSON (nunca "null").
func EncodeSnapshot(c entity.Cart) (string, error) {
	if c == nil {
		c = entity.Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("serializar carrito: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot parsea y valida un snapshot persistido.
func DecodeSnapshot(raw string) (entity.Cart, error) {
	var c entity.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptSnapshot, err)
	}
	if c == nil {
		c = entity.Cart{}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptSnapshot, err)
	}
	return c, nil
}
