package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/service"
	"github.com/bellari/internal/view"
	"github.com/gin-gonic/gin"
)

// sectionView 是公开页面中渲染的一个区块。
type sectionView struct {
	db.Section
	Body template.HTML
}

// ShowHome 渲染首页
func (a *API) ShowHome(c *gin.Context) {
	a.showPage(c, db.PageSlugHome, "index.html")
}

// ShowAbout 渲染关于页
func (a *API) ShowAbout(c *gin.Context) {
	a.showPage(c, db.PageSlugAbout, "about.html")
}

// ShowServices 渲染服务页
func (a *API) ShowServices(c *gin.Context) {
	a.showPage(c, db.PageSlugServices, "services.html")
}

// ShowPortfolio 渲染作品页
func (a *API) ShowPortfolio(c *gin.Context) {
	a.showPage(c, db.PageSlugPortfolio, "portfolio.html")
}

// ShowContact 渲染联系页
func (a *API) ShowContact(c *gin.Context) {
	a.showPage(c, db.PageSlugContact, "contact.html")
}

func (a *API) showPage(c *gin.Context, slug, template string) {
	lang := requestLanguage(c)

	page, err := a.pages.GetActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c)
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}

	items, err := a.pages.ActiveSections(page.ID, lang)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}

	views := buildSectionViews(items)
	a.metrics.RecordPageView(slug, lang.String())

	data := gin.H{
		"title":    page.Title,
		"page":     page,
		"sections": views,
		"byType":   groupSectionViews(views),
	}
	if page.MetaDescription != "" {
		data["metaDescription"] = page.MetaDescription
	}
	a.renderHTML(c, http.StatusOK, template, data)
}

func buildSectionViews(items []db.Section) []sectionView {
	views := make([]sectionView, 0, len(items))
	for _, item := range items {
		views = append(views, sectionView{Section: item, Body: view.Markdown(item.Content)})
	}
	return views
}

// groupSectionViews 按类型分组，保持每组内的顺序。
func groupSectionViews(views []sectionView) map[string][]sectionView {
	grouped := make(map[string][]sectionView)
	for _, item := range views {
		key := string(item.SectionType)
		grouped[key] = append(grouped[key], item)
	}
	return grouped
}
