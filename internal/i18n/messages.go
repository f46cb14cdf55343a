package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/jhoicas/storefront-cart/internal/domain"
)

// Claves de los mensajes que ve el usuario (toasts).
const (
	MsgStockExceeded = "stock_exceeded"
	MsgAddFailed     = "add_failed"
	MsgRemoveFailed  = "remove_failed"
	MsgUpdateFailed  = "update_failed"
	MsgClearFailed   = "clear_failed"
	MsgUnexpected    = "unexpected"
	MsgStockIssue    = "stock_issue"
)

// Supported idiomas con traducción; el primero es el idioma por defecto.
var Supported = []language.Tag{language.BrazilianPortuguese, language.Spanish, language.English}

var entries = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		MsgStockExceeded: "Quantidade solicitada fora de estoque",
		MsgAddFailed:     "Erro na adição do produto",
		MsgRemoveFailed:  "Erro na remoção do produto",
		MsgUpdateFailed:  "Erro na alteração de quantidade do produto",
		MsgClearFailed:   "Erro ao esvaziar o carrinho",
		MsgUnexpected:    "Erro inesperado",
		MsgStockIssue:    "Produto %d: solicitado %d, disponível %d",
	},
	language.Spanish: {
		MsgStockExceeded: "Cantidad solicitada fuera de stock",
		MsgAddFailed:     "Error al agregar el producto",
		MsgRemoveFailed:  "Error al eliminar el producto",
		MsgUpdateFailed:  "Error al cambiar la cantidad del producto",
		MsgClearFailed:   "Error al vaciar el carrito",
		MsgUnexpected:    "Error inesperado",
		MsgStockIssue:    "Producto %d: solicitado %d, disponible %d",
	},
	language.English: {
		MsgStockExceeded: "Requested amount is out of stock",
		MsgAddFailed:     "Could not add the product",
		MsgRemoveFailed:  "Could not remove the product",
		MsgUpdateFailed:  "Could not change the product amount",
		MsgClearFailed:   "Could not empty the cart",
		MsgUnexpected:    "Unexpected error",
		MsgStockIssue:    "Product %d: requested %d, available %d",
	},
}

// Translator elige el idioma de cada petición y formatea los mensajes.
type Translator struct {
	cat      *catalog.Builder
	matcher  language.Matcher
	fallback language.Tag
}

// New construye el traductor. defaultLocale se usa si el cliente no pide un idioma soportado;
// si no es válido o no está soportado se usa pt-BR.
func New(defaultLocale string) *Translator {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			_ = b.SetString(tag, key, msg)
		}
	}
	t := &Translator{cat: b, matcher: language.NewMatcher(Supported), fallback: Supported[0]}
	if tag, err := language.Parse(defaultLocale); err == nil {
		if _, idx, conf := t.matcher.Match(tag); conf != language.No {
			t.fallback = Supported[idx]
		}
	}
	return t
}

// Fallback idioma por defecto.
func (t *Translator) Fallback() language.Tag {
	return t.fallback
}

// Match resuelve un encabezado Accept-Language contra los idiomas soportados.
func (t *Translator) Match(acceptLanguage string) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return t.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}
	return Supported[idx]
}

// Message formatea la clave en el idioma tag.
func (t *Translator) Message(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag, message.Catalog(t.cat)).Sprintf(key, args...)
}

// ErrorMessage mensaje para el usuario de un error de carrito. Stock excedido tiene mensaje propio;
// cualquier otra causa se muestra como la falla genérica de la operación.
func (t *Translator) ErrorMessage(tag language.Tag, err error) string {
	return t.Message(tag, ErrorKey(err))
}

// ErrorKey clave de mensaje para err.
func ErrorKey(err error) string {
	switch {
	case errors.Is(err, domain.ErrStockExceeded):
		return MsgStockExceeded
	case errors.Is(err, domain.ErrAddProduct):
		return MsgAddFailed
	case errors.Is(err, domain.ErrRemoveProduct):
		return MsgRemoveFailed
	case errors.Is(err, domain.ErrUpdateAmount):
		return MsgUpdateFailed
	case errors.Is(err, domain.ErrClearCart):
		return MsgClearFailed
	default:
		return MsgUnexpected
	}
}
