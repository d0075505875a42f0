package handler

import (
	"errors"
	"strconv"

	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/service"
	"github.com/gin-gonic/gin"
)

// UpdateSection 保存单个区块的内容，类型与语言不可修改
func (a *API) UpdateSection(c *gin.Context) {
	lang := requestLanguage(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	item, err := a.sections.Update(id, sectionInputFromForm(c, ""))
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			a.renderNotFound(c)
			return
		}
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, safeRedirectTarget(c.GetHeader("Referer"), "/admin/pages"))
		return
	}

	addFlash(c, flashSuccess, message(lang, msgSectionUpdated))
	redirectTo(c, pageEditPath(item.PageID))
}

// CreateSection 在页面末尾追加一个单语言区块
func (a *API) CreateSection(c *gin.Context) {
	lang := requestLanguage(c)
	pageID, err := parseUintForm(c, "page_id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	_, err = a.sections.Create(service.CreateSectionInput{
		PageID:       pageID,
		Type:         c.PostForm("section_type"),
		Language:     c.PostForm("language_code"),
		SectionInput: sectionInputFromForm(c, ""),
	})
	if a.handleSectionCreateError(c, lang, err) {
		return
	}

	addFlash(c, flashSuccess, message(lang, msgSectionCreated))
	redirectTo(c, pageEditPath(pageID))
}

// CreateSectionPair 同时创建共享排序位置的法语与英语区块
func (a *API) CreateSectionPair(c *gin.Context) {
	lang := requestLanguage(c)
	pageID, err := parseUintForm(c, "page_id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	_, err = a.sections.CreatePair(service.CreatePairInput{
		PageID: pageID,
		Type:   c.PostForm("section_type"),
		FR:     sectionInputFromForm(c, "fr_"),
		EN:     sectionInputFromForm(c, "en_"),
	})
	if a.handleSectionCreateError(c, lang, err) {
		return
	}

	addFlash(c, flashSuccess, message(lang, msgSectionPairCreated))
	redirectTo(c, pageEditPath(pageID))
}

func (a *API) handleSectionCreateError(c *gin.Context, lang locale.Language, err error) bool {
	pageID, _ := parseUintForm(c, "page_id")
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrPageNotFound):
		a.renderNotFound(c)
	case errors.Is(err, service.ErrSectionTypeInvalid):
		addFlash(c, flashError, message(lang, msgSectionTypeInvalid))
		redirectTo(c, pageEditPath(pageID))
	case errors.Is(err, service.ErrSectionLanguageInvalid):
		addFlash(c, flashError, message(lang, msgSectionLangInvalid))
		redirectTo(c, pageEditPath(pageID))
	default:
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, pageEditPath(pageID))
	}
	return true
}

// DeleteSection 删除区块并返回所属页面
func (a *API) DeleteSection(c *gin.Context) {
	lang := requestLanguage(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	item, err := a.sections.Delete(id)
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			a.renderNotFound(c)
			return
		}
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, "/admin/pages")
		return
	}

	addFlash(c, flashSuccess, message(lang, msgSectionDeleted))
	redirectTo(c, pageEditPath(item.PageID))
}

// NormalizeSections 重新编号区块顺序；带 page_id 时只处理该页面
func (a *API) NormalizeSections(c *gin.Context) {
	lang := requestLanguage(c)

	if raw := c.Query("page_id"); raw != "" {
		pageID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			a.renderNotFound(c)
			return
		}
		result, err := a.sections.Normalize(uint(pageID))
		if err != nil {
			if errors.Is(err, service.ErrPageNotFound) {
				a.renderNotFound(c)
				return
			}
			c.Error(err)
			addFlash(c, flashError, message(lang, msgStorageError))
			redirectTo(c, pageEditPath(uint(pageID)))
			return
		}
		a.metrics.RecordSectionsMoved(result.Changed)
		addFlash(c, flashSuccess, message(lang, msgSectionsNormalized, result.Changed))
		redirectTo(c, pageEditPath(uint(pageID)))
		return
	}

	results, err := a.sections.NormalizeAll()
	if err != nil {
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, "/admin")
		return
	}
	changed := 0
	for _, result := range results {
		changed += result.Changed
	}
	a.metrics.RecordSectionsMoved(changed)
	addFlash(c, flashSuccess, message(lang, msgSectionsNormalized, changed))
	redirectTo(c, "/admin/pages")
}

func sectionInputFromForm(c *gin.Context, prefix string) service.SectionInput {
	return service.SectionInput{
		Heading:         c.PostForm(prefix + "heading"),
		Subheading:      c.PostForm(prefix + "subheading"),
		Content:         c.PostForm(prefix + "content"),
		ButtonText:      c.PostForm(prefix + "button_text"),
		ButtonLink:      c.PostForm(prefix + "button_link"),
		ImageURL:        c.PostForm(prefix + "image_url"),
		BackgroundColor: c.PostForm(prefix + "background_color"),
		IsActive:        formBool(c, prefix+"is_active"),
	}
}
