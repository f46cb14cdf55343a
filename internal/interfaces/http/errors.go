package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-cart/internal/application/dto"
	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/i18n"
)

// errorStatus traduce la causa de un error de dominio a status y código HTTP.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrStockExceeded):
		return fiber.StatusConflict, "STOCK_EXCEEDED"
	case errors.Is(err, domain.ErrNotInCart):
		return fiber.StatusNotFound, "NOT_IN_CART"
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrInventoryUnavailable):
		return fiber.StatusBadGateway, "INVENTORY_UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con el mensaje localizado que la UI muestra como toast.
func writeError(c *fiber.Ctx, tr *i18n.Translator, err error) error {
	status, code := errorStatus(err)
	msg := tr.ErrorMessage(GetLocale(c, tr.Fallback()), err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
