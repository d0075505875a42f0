package router

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bellari/data"
	"github.com/bellari/internal/handler"
	"github.com/bellari/internal/monitoring"
	"github.com/bellari/internal/service"
	"github.com/bellari/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionCookieName = "bellari_session"

// Options 描述路由层需要的部署参数。
type Options struct {
	SessionSecret    string
	TemplateDir      string
	StaticDir        string
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

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, opts Options) *gin.Engine {
	r := gin.Default()

	metrics := opts.Metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	r.Use(metrics.Middleware())

	// 配置会话中间件
	secret := strings.TrimSpace(opts.SessionSecret)
	if secret == "" {
		secret = "bellari-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	seed := opts.Seed
	if seed == nil {
		parsed, err := service.ParseSeedContent(data.SeedContent)
		if err != nil {
			log.Printf("failed to parse seed content: %v", err)
		}
		seed = parsed
	}

	uploadURL := normalizeURLPath(opts.UploadURL, "/static/uploads")
	api := handler.NewAPI(gdb, handler.Options{
		UploadDir:        opts.UploadDir,
		UploadURL:        uploadURL,
		MaxUploadBytes:   opts.MaxUploadBytes,
		AdminInitAllowed: opts.AdminInitAllowed,
		AdminUsername:    opts.AdminUsername,
		AdminPassword:    opts.AdminPassword,
		SiteBaseURL:      opts.SiteBaseURL,
		Seed:             seed,
		Metrics:          metrics,
	})
	r.Use(api.LocaleMiddleware())

	// 加载模板并添加自定义函数
	if tmpl, err := LoadTemplates(opts.TemplateDir); err != nil {
		log.Printf("failed to load templates: %v", err)
	} else if tmpl != nil {
		r.SetHTMLTemplate(tmpl)
	}

	registerStatic(r, opts.StaticDir, opts.UploadDir, uploadURL)

	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/services", api.ShowServices)
	r.GET("/portfolio", api.ShowPortfolio)
	r.GET("/contact", api.ShowContact)
	r.GET("/lang/:code", api.SwitchLanguage)

	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/robots.txt", api.Robots)
	r.GET("/manifest.json", api.Manifest)
	r.GET("/healthz", api.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 后台管理路由
	r.GET("/admin/login", api.ShowLoginPage)
	r.POST("/admin/login", api.Login)
	r.GET("/admin/logout", api.Logout)

	// 需要认证的后台路由
	auth := r.Group("/admin")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("", api.ShowDashboard)
		auth.GET("/init-db", api.InitDatabase)
		auth.GET("/pages", api.ShowPageList)
		auth.GET("/page/:id", api.ShowPageEdit)
		auth.GET("/page/:id/sections", api.PageSectionsJSON)
		auth.POST("/page/:id/update", api.UpdatePage)
		auth.POST("/page/:id/delete", api.DeletePage)

		auth.POST("/section/create", api.CreateSection)
		auth.POST("/section/create_both", api.CreateSectionPair)
		auth.POST("/section/:id/update", api.UpdateSection)
		auth.POST("/section/:id/delete", api.DeleteSection)
		auth.GET("/normalize-sections", api.NormalizeSections)

		auth.GET("/images", api.ShowImages)
		auth.POST("/image/:id/delete", api.DeleteImage)
		auth.POST("/upload", api.UploadImage)
		auth.POST("/upload-logo", api.UploadLogo)

		auth.GET("/settings", api.ShowSettings)
		auth.POST("/settings", api.UpdateSettings)
	}

	r.NoRoute(api.NotFound)

	return r
}

// LoadTemplates 解析 public 与 admin 目录下的模板，目录为空时返回 nil。
func LoadTemplates(dir string) (*template.Template, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, nil
	}

	tmpl := template.New("").Funcs(view.FuncMap())
	parsed := false
	for _, pattern := range []string{"public/*.html", "admin/*.html"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			continue
		}
		if _, err := tmpl.ParseFiles(matches...); err != nil {
			return nil, err
		}
		parsed = true
	}
	if !parsed {
		return nil, nil
	}
	return tmpl, nil
}

// registerStatic 挂载静态资源与上传目录；上传地址位于 /static 之下时共用同一路由。
func registerStatic(r *gin.Engine, staticDir, uploadDir, uploadURL string) {
	staticDir = strings.TrimSpace(staticDir)
	uploadDir = strings.TrimSpace(uploadDir)

	var staticFS, uploadFS http.Handler
	if staticDir != "" {
		staticFS = http.StripPrefix("/static", http.FileServer(gin.Dir(staticDir, false)))
	}
	if uploadDir != "" {
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			log.Printf("failed to create upload dir: %v", err)
		}
		uploadFS = http.StripPrefix(uploadURL, http.FileServer(gin.Dir(uploadDir, false)))
		r.StaticFS("/uploads", gin.Dir(uploadDir, false))
	}

	if !strings.HasPrefix(uploadURL+"/", "/static/") {
		if staticFS != nil {
			r.Static("/static", staticDir)
		}
		if uploadFS != nil && uploadURL != "/uploads" {
			r.StaticFS(uploadURL, gin.Dir(uploadDir, false))
		}
		return
	}

	serve := func(c *gin.Context) {
		full := "/static" + c.Param("filepath")
		switch {
		case uploadFS != nil && strings.HasPrefix(full, uploadURL+"/"):
			uploadFS.ServeHTTP(c.Writer, c.Request)
		case staticFS != nil:
			staticFS.ServeHTTP(c.Writer, c.Request)
		default:
			c.Status(http.StatusNotFound)
		}
	}
	r.GET("/static/*filepath", serve)
	r.HEAD("/static/*filepath", serve)
}

func normalizeURLPath(raw, fallback string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return fallback
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return raw
}
