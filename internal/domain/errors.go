package domain

import "errors"

// Errores de dominio del carrito (sin dependencias externas).
var (
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrStockExceeded        = errors.New("cantidad solicitada fuera de stock")
	ErrNotInCart            = errors.New("el producto no está en el carrito")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrInventoryUnavailable = errors.New("servicio de inventario no disponible")
	ErrCorruptSnapshot      = errors.New("snapshot del carrito corrupto")
)

// Errores de operación: envuelven la causa concreta para que el llamador
// pueda distinguir la operación fallida y el motivo con errors.Is.
var (
	ErrAddProduct    = errors.New("error al agregar el producto")
	ErrRemoveProduct = errors.New("error al eliminar el producto")
	ErrUpdateAmount  = errors.New("error al actualizar la cantidad del producto")
	ErrClearCart     = errors.New("error al vaciar el carrito")
)
