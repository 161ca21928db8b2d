package api

import (
	"github.com/gofiber/fiber/v2"
)

// LanguageMiddleware picks the response language from ?lang, then the
// language cookie, then Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if cookieLanguage := c.Cookies(languageCookieName); cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}
	if queryLanguage := c.Query("lang"); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
		handler.setLanguageCookie(c, language)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().AddDate(1, 0, 0),
	})
}
