package handler

import (
	"strings"
	"time"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/monitoring"
	"github.com/bellari/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db             *gorm.DB
	pages          *service.PageService
	sections       *service.SectionService
	images         *service.ImageService
	settings       *service.SiteSettingService
	auth           *service.AuthService
	seeder         *service.Seeder
	sitemap        *service.SitemapService
	metrics        *monitoring.Metrics
	baseURL        string
	maxUploadBytes int64
	adminUsername  string
	adminPassword  string
}

// Options 描述构造 API 所需的部署参数。
type Options struct {
	UploadDir        string
	UploadURL        string
	MaxUploadBytes   int64
	AdminInitAllowed bool
	AdminUsername    string
	AdminPassword    string
	SiteBaseURL      string
	Seed             *service.SeedContent
	Metrics          *monitoring.Metrics
}

type navLink struct {
	Slug   string
	Path   string
	Label  string
	Active bool
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	return &API{
		db:             gdb,
		pages:          service.NewPageService(gdb),
		sections:       service.NewSectionService(gdb),
		images:         service.NewImageService(gdb, opts.UploadDir, opts.UploadURL, opts.MaxUploadBytes),
		settings:       service.NewSiteSettingService(gdb),
		auth:           service.NewAuthService(gdb),
		seeder:         service.NewSeeder(gdb, opts.Seed, opts.AdminInitAllowed),
		sitemap:        service.NewSitemapService(gdb),
		metrics:        opts.Metrics,
		baseURL:        strings.TrimRight(strings.TrimSpace(opts.SiteBaseURL), "/"),
		maxUploadBytes: opts.MaxUploadBytes,
		adminUsername:  opts.AdminUsername,
		adminPassword:  opts.AdminPassword,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) siteSettings(c *gin.Context, lang locale.Language) service.SiteInfo {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if info, ok := cached.(service.SiteInfo); ok {
			return info
		}
	}

	info, err := a.settings.Site(lang)
	if err != nil {
		c.Error(err)
	}
	c.Set(siteSettingsContextKey, info)
	return info
}

// renderHTML 在向模板渲染时自动附加站点设置、当前语言与导航信息。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	lang := requestLanguage(c)
	site := a.siteSettings(c, lang)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = site
	}
	if _, exists := payload["lang"]; !exists {
		payload["lang"] = lang
	}
	if _, exists := payload["locale"]; !exists {
		payload["locale"] = locale.PreferenceForLanguage(lang)
	}
	if _, exists := payload["languageSwitch"]; !exists {
		payload["languageSwitch"] = buildLanguageSwitch(c)
	}
	if _, exists := payload["nav"]; !exists {
		payload["nav"] = buildNav(c, lang)
	}
	if _, exists := payload["metaDescription"]; !exists {
		payload["metaDescription"] = site.MetaDescription
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, template, payload)
}

func (a *API) renderNotFound(c *gin.Context) {
	lang := requestLanguage(c)
	a.renderHTML(c, 404, "not_found.html", gin.H{
		"title": message(lang, msgNotFoundTitle),
	})
}

func buildNav(c *gin.Context, lang locale.Language) []navLink {
	current := "/"
	if c.Request != nil && c.Request.URL != nil {
		current = c.Request.URL.Path
	}
	links := make([]navLink, 0, len(db.PublicPageSlugs))
	for _, slug := range db.PublicPageSlugs {
		path := db.PathForSlug(slug)
		links = append(links, navLink{
			Slug:   slug,
			Path:   path,
			Label:  navLabel(lang, slug),
			Active: path == current,
		})
	}
	return links
}

// NotFound 渲染 404 页面
func (a *API) NotFound(c *gin.Context) {
	a.renderNotFound(c)
}
