package view

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/i18n"
)

const localizerKey = "localizer"

// HeaderAcceptLanguage is the request header UseLocale negotiates on.
const HeaderAcceptLanguage = "Accept-Language"

// UseLocale picks the request's language from Accept-Language and stores a
// Localizer for it in the echo context.
func UseLocale(bundle *i18n.Bundle) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tag := bundle.Match(c.Request().Header.Get(HeaderAcceptLanguage))
			c.Set(localizerKey, bundle.Localizer(tag))
			c.Response().Header().Set("Content-Language", tag.String())
			return next(c)
		}
	}
}

// Localizer returns the request's Localizer. Without the UseLocale
// middleware message keys are returned untranslated.
func Localizer(c echo.Context) i18n.Localizer {
	if l, ok := c.Get(localizerKey).(i18n.Localizer); ok {
		return l
	}
	return keyLocalizer{}
}

type keyLocalizer struct{}

func (keyLocalizer) T(key string, _ ...any) string { return key }
