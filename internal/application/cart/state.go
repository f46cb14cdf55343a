package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/storefront-cart/internal/application/ports"
	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/domain/entity"
	"github.com/jhoicas/storefront-cart/internal/domain/repository"
	"github.com/jhoicas/storefront-cart/pkg/logger"
)

// DefaultStorageKey clave con la que se persiste el carrito si no se configura otra.
const DefaultStorageKey = "@RocketShoes:cart"

// Options ajustes del contenedor.
type Options struct {
	// StorageKey clave del snapshot; DefaultStorageKey si está vacía.
	StorageKey string
	// CheckStockOnFirstAdd valida stock también al insertar una línea nueva (cantidad 1).
	CheckStockOnFirstAdd bool
}

// UpdateProductAmount entrada de State.UpdateProductAmount.
type UpdateProductAmount struct {
	ProductID int
	Amount    int
}

// State contenedor del estado del carrito. Se crea con Open y se pasa por referencia a
// quien lo use. Las operaciones se serializan: el mutex se mantiene durante la consulta de
// stock y el commit, así dos AddProduct simultáneos no pisan la cantidad del otro.
type State struct {
	mu        sync.Mutex
	inventory ports.InventoryService
	storage   repository.CartStorage
	log       *logger.Logger
	opts      Options
	cart      entity.Cart
}

// Open construye el estado cargando el snapshot persistido (o vacío si no hay).
// Un snapshot ilegible se descarta con un warning y se sobreescribe en el próximo commit.
func Open(ctx context.Context, inventory ports.InventoryService, storage repository.CartStorage, log *logger.Logger, opts Options) (*State, error) {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &State{
		inventory: inventory,
		storage:   storage,
		log:       log.Named("cart"),
		opts:      opts,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Key clave de almacenamiento de este carrito.
func (s *State) Key() string {
	return s.opts.StorageKey
}

// Items copia de las líneas actuales en orden de inserción.
func (s *State) Items() entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Reload vuelve a leer el snapshot persistido, p. ej. tras un borrado externo.
func (s *State) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// AddProduct suma una unidad del producto. Si ya tiene línea valida current+1 contra el stock;
// si no la tiene, trae el producto y lo inserta con cantidad 1.
func (s *State) AddProduct(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if productID <= 0 {
		return s.reject(domain.ErrAddProduct, productID, domain.ErrInvalidInput)
	}

	var next entity.Cart
	if item, ok := s.cart.Find(productID); ok {
		candidate := item.Amount + 1
		if err := s.checkStock(ctx, productID, candidate); err != nil {
			return s.reject(domain.ErrAddProduct, productID, err)
		}
		next = s.cart.WithAmount(productID, candidate)
	} else {
		if s.opts.CheckStockOnFirstAdd {
			if err := s.checkStock(ctx, productID, 1); err != nil {
				return s.reject(domain.ErrAddProduct, productID, err)
			}
		}
		product, err := s.inventory.GetProduct(ctx, productID)
		if err != nil {
			return s.reject(domain.ErrAddProduct, productID, err)
		}
		product.ID = productID
		next = s.cart.Append(entity.LineItem{Product: product, Amount: 1})
	}

	return s.commit(ctx, domain.ErrAddProduct, next)
}

// RemoveProduct quita la línea del producto. Si no existe devuelve ErrNotInCart y no persiste.
func (s *State) RemoveProduct(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Contains(productID) {
		return s.reject(domain.ErrRemoveProduct, productID, domain.ErrNotInCart)
	}
	return s.commit(ctx, domain.ErrRemoveProduct, s.cart.Without(productID))
}

// UpdateProductAmount fija la cantidad de una línea existente. Cantidades <= 0 se ignoran
// sin error; cantidades por encima del stock devuelven ErrStockExceeded.
func (s *State) UpdateProductAmount(ctx context.Context, in UpdateProductAmount) error {
	if in.Amount <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Contains(in.ProductID) {
		return s.reject(domain.ErrUpdateAmount, in.ProductID, domain.ErrNotInCart)
	}
	if err := s.checkStock(ctx, in.ProductID, in.Amount); err != nil {
		return s.reject(domain.ErrUpdateAmount, in.ProductID, err)
	}
	return s.commit(ctx, domain.ErrUpdateAmount, s.cart.WithAmount(in.ProductID, in.Amount))
}

// Clear vacía el carrito borrando el snapshot persistido. Si el borrado falla el
// estado en memoria no cambia.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, s.opts.StorageKey); err != nil {
		s.log.Error().Err(err).Str("key", s.opts.StorageKey).Msg("vaciar carrito")
		return fmt.Errorf("%w: %w", domain.ErrClearCart, err)
	}
	s.cart = entity.Cart{}
	s.log.Debug().Str("key", s.opts.StorageKey).Msg("carrito vaciado")
	return nil
}

func (s *State) checkStock(ctx context.Context, productID, amount int) error {
	stock, err := s.inventory.GetStock(ctx, productID)
	if err != nil {
		return err
	}
	if !stock.Allows(amount) {
		return fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrStockExceeded, amount, stock.Amount)
	}
	return nil
}

// commit persiste el carrito completo y solo entonces reemplaza el estado en memoria.
func (s *State) commit(ctx context.Context, op error, next entity.Cart) error {
	data, err := EncodeSnapshot(next)
	if err != nil {
		return fmt.Errorf("%w: %w", op, err)
	}
	if err := s.storage.Set(ctx, s.opts.StorageKey, data); err != nil {
		s.log.Error().Err(err).Str("key", s.opts.StorageKey).Msg("persistir carrito")
		return fmt.Errorf("%w: persistir carrito: %w", op, err)
	}
	s.cart = next
	s.log.Debug().
		Str("key", s.opts.StorageKey).
		Int("lines", len(next)).
		Int("items", next.ItemCount()).
		Msg("carrito actualizado")
	return nil
}

func (s *State) reject(op error, productID int, cause error) error {
	ev := s.log.Warn()
	if errors.Is(cause, domain.ErrInventoryUnavailable) {
		ev = s.log.Error()
	}
	ev.Err(cause).Int("product_id", productID).Str("op", op.Error()).Msg("operación de carrito rechazada")
	return fmt.Errorf("%w: %w", op, cause)
}

func (s *State) load(ctx context.Context) error {
	raw, found, err := s.storage.Get(ctx, s.opts.StorageKey)
	if err != nil {
		return fmt.Errorf("leer carrito %q: %w", s.opts.StorageKey, err)
	}
	if !found {
		s.cart = entity.Cart{}
		return nil
	}
	cart, err := DecodeSnapshot(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.opts.StorageKey).Msg("snapshot descartado")
		s.cart = entity.Cart{}
		return nil
	}
	s.cart = cart
	return nil
}
