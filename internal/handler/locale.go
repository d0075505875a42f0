package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bellari/internal/locale"
	"github.com/gin-gonic/gin"
)

const (
	languageContextKey   = "__request_language"
	languageCookieName   = "bellari_lang"
	languageCookieMaxAge = 365 * 24 * 60 * 60
)

// LocaleMiddleware 为每个请求解析一次语言，后续读取都显式使用该值。
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLanguage(c)
		c.Header("Content-Language", lang.String())
		appendVaryHeader(c, "Cookie")
		c.Next()
	}
}

// SwitchLanguage 保存所选语言并返回来源页面，不支持的语言保持原值。
func (a *API) SwitchLanguage(c *gin.Context) {
	if lang := locale.NormalizeLanguage(c.Param("code")); lang != "" {
		persistLanguage(c, lang)
	}
	redirectTo(c, safeRedirectTarget(c.GetHeader("Referer"), "/"))
}

func requestLanguage(c *gin.Context) locale.Language {
	if cached, exists := c.Get(languageContextKey); exists {
		if lang, ok := cached.(locale.Language); ok {
			return lang
		}
	}
	lang, persist := resolveLanguage(c)
	if persist {
		persistLanguage(c, lang)
	}
	c.Set(languageContextKey, lang)
	return lang
}

func resolveLanguage(c *gin.Context) (locale.Language, bool) {
	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" {
		return override, true
	}
	if cookie := readLanguageCookie(c); cookie != "" {
		return cookie, false
	}
	return locale.DefaultLanguage, false
}

func readLanguageCookie(c *gin.Context) locale.Language {
	value, err := c.Cookie(languageCookieName)
	if err != nil {
		return ""
	}
	return locale.NormalizeLanguage(value)
}

func persistLanguage(c *gin.Context, lang locale.Language) {
	if !lang.Valid() {
		return
	}
	c.Set(languageContextKey, lang)
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     languageCookieName,
		Value:    lang.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   strings.EqualFold(detectScheme(c), "https"),
		MaxAge:   languageCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
}

func buildLanguageSwitch(c *gin.Context) map[string]string {
	path := "/"
	rawQuery := ""
	if c.Request != nil && c.Request.URL != nil {
		path = c.Request.URL.Path
		rawQuery = c.Request.URL.RawQuery
	}
	values, _ := url.ParseQuery(rawQuery)
	links := make(map[string]string, len(locale.Supported))
	for _, lang := range locale.Supported {
		values.Set("lang", lang.String())
		links[lang.String()] = path + "?" + values.Encode()
	}
	return links
}

func appendVaryHeader(c *gin.Context, headers ...string) {
	existing := c.Writer.Header().Get("Vary")
	seen := make(map[string]struct{})
	order := make([]string, 0, len(headers))
	for _, token := range append(strings.Split(existing, ","), headers...) {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		order = append(order, trimmed)
	}
	if len(order) > 0 {
		c.Header("Vary", strings.Join(order, ", "))
	}
}
