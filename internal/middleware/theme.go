package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/service"
)

// ContextKeyTheme is the Gin context key for the resolved theme.
const ContextKeyTheme = "theme"

// Theme resolves the theme cookie once per request.
func Theme() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(service.ThemeCookie)
		c.Set(ContextKeyTheme, service.ParseTheme(raw))
		c.Next()
	}
}

// GetTheme returns the theme set by the Theme middleware, or light.
func GetTheme(c *gin.Context) model.Theme {
	if v, ok := c.Get(ContextKeyTheme); ok {
		if t, ok := v.(model.Theme); ok {
			return t
		}
	}
	return model.ThemeLight
}
