package view

import (
	"html/template"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
)

// SectionFields 是后台区块表单片段的数据。
type SectionFields struct {
	Lang    locale.Language
	Prefix  string
	Section db.Section
}

// FuncMap 返回公开页面与后台模板共用的函数。
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"socialIcon":  SocialIconSVG,
		"socialLabel": SocialIconLabel,
		"pick": func(lang locale.Language, french, english string) string {
			return locale.Pick(lang, french, english)
		},
		"sectionFields": func(lang locale.Language, prefix string, section *db.Section) SectionFields {
			fields := SectionFields{Lang: lang, Prefix: prefix, Section: db.Section{IsActive: true}}
			if section != nil {
				fields.Section = *section
			}
			return fields
		},
		"truncate": func(s string, n int) string {
			runes := []rune(s)
			if n <= 0 || len(runes) <= n {
				return s
			}
			return string(runes[:n]) + "…"
		},
	}
}
