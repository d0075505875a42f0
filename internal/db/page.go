package db

import "time"

// Page represents one routable marketing page such as home or contact.
type Page struct {
	ID              uint   `gorm:"primaryKey"`
	Slug            string `gorm:"size:100;uniqueIndex;not null"`
	Title           string `gorm:"size:200;not null"`
	MetaDescription string `gorm:"size:300"`
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Sections        []Section `gorm:"constraint:OnDelete:CASCADE;"`
}

// 固定的页面 slug，与公开路由一一对应。
const (
	PageSlugHome      = "home"
	PageSlugAbout     = "about"
	PageSlugServices  = "services"
	PageSlugPortfolio = "portfolio"
	PageSlugContact   = "contact"
)

// PublicPageSlugs lists the page slugs in navigation order.
var PublicPageSlugs = []string{
	PageSlugHome,
	PageSlugAbout,
	PageSlugServices,
	PageSlugPortfolio,
	PageSlugContact,
}

// PathForSlug returns the public URL path for a page slug.
func PathForSlug(slug string) string {
	if slug == PageSlugHome {
		return "/"
	}
	return "/" + slug
}
