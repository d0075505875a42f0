package service

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/bellari/internal/db"
	"gorm.io/gorm"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL 是 sitemap 中的一个地址条目。
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority"`
}

// Sitemap 对应 urlset 根节点。
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapService 根据已发布页面生成 sitemap.xml。
type SitemapService struct {
	db *gorm.DB
}

// NewSitemapService 构造 SitemapService。
func NewSitemapService(gdb *gorm.DB) *SitemapService {
	return &SitemapService{db: gdb}
}

// Build 返回已发布页面的 sitemap，首页优先级为 1.0，其余页面为 0.8。
func (s *SitemapService) Build(baseURL string) (*Sitemap, error) {
	pages, err := NewPageService(s.db).ListActive()
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	sitemap := &Sitemap{XMLNS: sitemapNamespace, URLs: make([]SitemapURL, 0, len(pages))}
	for _, page := range pages {
		entry := SitemapURL{
			Loc:        base + db.PathForSlug(page.Slug),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}
		if page.Slug == db.PageSlugHome {
			entry.Priority = "1.0"
		}
		if !page.UpdatedAt.IsZero() {
			entry.LastMod = page.UpdatedAt.UTC().Format("2006-01-02")
		}
		sitemap.URLs = append(sitemap.URLs, entry)
	}
	return sitemap, nil
}

// Render 将 sitemap 编码为带 XML 声明的文档。
func (s *Sitemap) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
