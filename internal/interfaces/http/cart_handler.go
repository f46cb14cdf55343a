package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-cart/internal/application/cart"
	"github.com/jhoicas/storefront-cart/internal/application/dto"
	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/i18n"
	"github.com/jhoicas/storefront-cart/pkg/logger"
)

// CartHandler expone el carrito de la sesión (requiere SessionMiddleware).
type CartHandler struct {
	carts *cart.Registry
	tr    *i18n.Translator
	log   *logger.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(carts *cart.Registry, tr *i18n.Translator, log *logger.Logger) *CartHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CartHandler{carts: carts, tr: tr, log: log}
}

// Get godoc
// @Summary      Carrito de la sesión
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	state, err := h.state(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(toCartResponse(state.Summary()))
}

// AddItem godoc
// @Summary      Agregar una unidad de un producto
// @Tags         cart
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return writeError(c, h.tr, invalid(domain.ErrAddProduct))
	}
	state, err := h.state(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	if err := state.AddProduct(c.UserContext(), id); err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(toCartResponse(state.Summary()))
}

// UpdateItem godoc
// @Summary      Fijar la cantidad de una línea
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del producto"
// @Param        body  body  dto.UpdateAmountRequest  true  "Cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return writeError(c, h.tr, invalid(domain.ErrUpdateAmount))
	}
	var in dto.UpdateAmountRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, h.tr, invalid(domain.ErrUpdateAmount))
	}
	state, err := h.state(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	if err := state.UpdateProductAmount(c.UserContext(), cart.UpdateProductAmount{ProductID: id, Amount: in.Amount}); err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(toCartResponse(state.Summary()))
}

// RemoveItem godoc
// @Summary      Quitar una línea
// @Tags         cart
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return writeError(c, h.tr, invalid(domain.ErrRemoveProduct))
	}
	state, err := h.state(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	if err := state.RemoveProduct(c.UserContext(), id); err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(toCartResponse(state.Summary()))
}

// Clear godoc
// @Summary      Vaciar el carrito de la sesión
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	state, err := h.state(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	if err := state.Clear(c.UserContext()); err != nil {
		return writeError(c, h.tr, err)
	}
	return c.JSON(toCartResponse(state.Summary()))
}

// Validate godoc
// @Summary      Revalidar el carrito contra el stock actual
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.ValidateCartResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cart/validate [post]
func (h *CartHandler) Validate(c *fiber.Ctx) error {
	state, err := h.state(c)
	if err != nil {
		return writeError(c, h.tr, err)
	}
	issues, err := state.ValidateStock(c.UserContext())
	if err != nil {
		return writeError(c, h.tr, err)
	}
	tag := GetLocale(c, h.tr.Fallback())
	out := dto.ValidateCartResponse{Valid: len(issues) == 0, Issues: make([]dto.StockIssueResponse, 0, len(issues))}
	for _, is := range issues {
		out.Issues = append(out.Issues, dto.StockIssueResponse{
			ProductID: is.ProductID,
			Requested: is.Requested,
			Available: is.Available,
			Message:   h.tr.Message(tag, i18n.MsgStockIssue, is.ProductID, is.Requested, is.Available),
		})
	}
	return c.JSON(out)
}

func (h *CartHandler) state(c *fiber.Ctx) (*cart.State, error) {
	state, err := h.carts.Get(c.UserContext(), GetSessionID(c))
	if err != nil {
		h.log.Error().Err(err).Str("session", GetSessionID(c)).Msg("abrir carrito")
	}
	return state, err
}

func invalid(op error) error {
	return fmt.Errorf("%w: %w", op, domain.ErrInvalidInput)
}

func toCartResponse(s cart.Summary) dto.CartResponse {
	subtotals := make([]decimal.Decimal, 0, len(s.Items))
	for _, item := range s.Items {
		subtotals = append(subtotals, item.Subtotal())
	}
	return dto.CartResponse{
		Items:     s.Items,
		Lines:     s.Lines,
		ItemCount: s.ItemCount,
		Subtotals: subtotals,
		Total:     s.Total,
	}
}
