package repository

import "context"

// CartStorage puerto de almacenamiento clave-valor para el snapshot del carrito.
// El valor es un string opaco (JSON del carrito); el puerto no lo interpreta.
type CartStorage interface {
	// Get devuelve el valor y found=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete borra la clave; no es error si no existe. Lo usa State.Clear.
	Delete(ctx context.Context, key string) error
}
