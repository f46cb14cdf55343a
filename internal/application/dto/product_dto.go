package dto

import "github.com/jhoicas/storefront-cart/internal/domain/entity"

// ProductListResponse lista paginada del catálogo. Los productos se serializan con todos sus atributos.
type ProductListResponse struct {
	Items []entity.Product `json:"items"`
	Page  PageResponse     `json:"page"`
}

// StockResponse salida de GET /stock/{id}.
type StockResponse struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}
