package usecase

import (
	"context"

	"github.com/jhoicas/storefront-cart/internal/application/dto"
	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/domain/entity"
	"github.com/jhoicas/storefront-cart/internal/domain/repository"
)

// CatalogUseCase casos de uso de lectura del servicio de inventario (productos y stock).
type CatalogUseCase struct {
	products repository.ProductRepository
	stock    repository.StockRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(products repository.ProductRepository, stock repository.StockRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, stock: stock}
}

// GetProduct obtiene un producto por ID; ErrProductNotFound si no existe.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// GetStock obtiene el stock de un producto. Un producto sin registro de stock tiene 0 disponibles;
// un id que no existe en el catálogo es ErrProductNotFound.
func (uc *CatalogUseCase) GetStock(ctx context.Context, id int) (*dto.StockResponse, error) {
	s, err := uc.stock.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return &dto.StockResponse{ID: id, Amount: s.Amount}, nil
	}
	if _, err := uc.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	return &dto.StockResponse{ID: id, Amount: 0}, nil
}

// List lista productos con paginación.
func (uc *CatalogUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]entity.Product, 0, len(list))
	for _, p := range list {
		items = append(items, *p)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CatalogWriter destino de ImportCatalog (p. ej. los repositorios de PostgreSQL).
type CatalogWriter interface {
	UpsertProduct(ctx context.Context, p entity.Product) error
	UpsertStock(ctx context.Context, s entity.Stock) error
}

// ImportCatalog copia productos y stock a dst; devuelve cuántos productos escribió.
func ImportCatalog(ctx context.Context, products []entity.Product, stock []entity.Stock, dst CatalogWriter) (int, error) {
	for _, p := range products {
		if err := dst.UpsertProduct(ctx, p); err != nil {
			return 0, err
		}
	}
	for _, s := range stock {
		if err := dst.UpsertStock(ctx, s); err != nil {
			return 0, err
		}
	}
	return len(products), nil
}
