package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/jhoicas/storefront-cart/internal/i18n"
)

// Locals keys para la sesión y el idioma en Fiber.
const (
	LocalSessionID = "session_id"
	LocalLocale    = "locale"
)

// SessionCookie nombre de la cookie que identifica el carrito del navegador.
const SessionCookie = "cart_session"

// sessionTTL vida de la cookie; se renueva en cada petición.
const sessionTTL = 30 * 24 * time.Hour

// SessionMiddleware asegura una sesión por navegador: reutiliza la cookie si trae un UUID válido
// y si no emite uno nuevo. El ID queda en c.Locals.
func SessionMiddleware(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// c.Cookies apunta al buffer de fasthttp, que se reutiliza entre peticiones.
		id := utils.CopyString(c.Cookies(SessionCookie))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(sessionTTL),
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// LocaleMiddleware resuelve Accept-Language contra los idiomas con traducción.
func LocaleMiddleware(tr *i18n.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag := tr.Match(c.Get(fiber.HeaderAcceptLanguage))
		c.Locals(LocalLocale, tag)
		c.Set(fiber.HeaderContentLanguage, tag.String())
		return c.Next()
	}
}

// GetSessionID devuelve el ID de sesión (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

// GetLocale devuelve el idioma de la petición; fallback si no pasó por LocaleMiddleware.
func GetLocale(c *fiber.Ctx, fallback language.Tag) language.Tag {
	if tag, ok := c.Locals(LocalLocale).(language.Tag); ok {
		return tag
	}
	return fallback
}
