package entity

// Stock cantidad disponible de un producto según el servicio de inventario.
// No se guarda en el carrito: se consulta en cada mutación que lo necesite.
type Stock struct {
	ProductID int `json:"id"`
	Amount    int `json:"amount"`
}

// Allows indica si el stock alcanza para la cantidad pedida.
func (s Stock) Allows(amount int) bool {
	return amount <= s.Amount
}
