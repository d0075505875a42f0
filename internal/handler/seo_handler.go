package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Sitemap 输出已发布页面的 sitemap.xml
func (a *API) Sitemap(c *gin.Context) {
	sitemap, err := a.sitemap.Build(a.requestBaseURL(c))
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	body, err := sitemap.Render()
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots 输出 robots.txt，禁止抓取后台
func (a *API) Robots(c *gin.Context) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("\nSitemap: " + a.requestBaseURL(c) + "/sitemap.xml\n")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}

// Manifest 根据 PWA 设置输出 manifest.json
func (a *API) Manifest(c *gin.Context) {
	manifest, err := a.settings.Manifest()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "manifest unavailable")
		return
	}
	c.Header("Content-Type", "application/manifest+json; charset=utf-8")
	c.JSON(http.StatusOK, manifest)
}

// Healthz 检查数据库连接
func (a *API) Healthz(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
