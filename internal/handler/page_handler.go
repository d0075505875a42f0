package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bellari/internal/sections"
	"github.com/bellari/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowPageList 渲染页面列表及各页面的区块数量
func (a *API) ShowPageList(c *gin.Context) {
	lang := requestLanguage(c)
	pages, err := a.pages.List()
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}
	counts, err := a.pages.SectionCounts()
	if err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "admin_pages.html", gin.H{
		"title":    message(lang, msgPagesTitle),
		"pages":    pages,
		"counts":   counts,
		"username": currentUsername(c),
		"flashes":  popFlashes(c),
	})
}

// ShowPageEdit 渲染页面编辑器，区块按法语/英语配对展示
func (a *API) ShowPageEdit(c *gin.Context) {
	lang := requestLanguage(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	page, err := a.pages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c)
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}

	pairs, err := a.sections.Pairs(page.ID)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}
	images, err := a.images.List()
	if err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "admin_page_edit.html", gin.H{
		"title":        message(lang, msgEditPageTitle),
		"page":         page,
		"pairs":        pairs,
		"sectionTypes": sections.Types,
		"images":       a.imageViews(images),
		"username":     currentUsername(c),
		"flashes":      popFlashes(c),
	})
}

// UpdatePage 保存页面标题、描述与发布状态
func (a *API) UpdatePage(c *gin.Context) {
	lang := requestLanguage(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	_, err = a.pages.Update(id, service.PageInput{
		Title:           c.PostForm("title"),
		MetaDescription: c.PostForm("meta_description"),
		IsActive:        formBool(c, "is_active"),
	})
	switch {
	case err == nil:
		addFlash(c, flashSuccess, message(lang, msgPageUpdated))
	case errors.Is(err, service.ErrPageNotFound):
		a.renderNotFound(c)
		return
	case errors.Is(err, service.ErrPageTitleMissing):
		addFlash(c, flashError, message(lang, msgPageTitleMissing))
	default:
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
	}
	redirectTo(c, pageEditPath(id))
}

// DeletePage 删除页面及其全部区块
func (a *API) DeletePage(c *gin.Context) {
	lang := requestLanguage(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	if err := a.pages.Delete(id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c)
			return
		}
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, pageEditPath(id))
		return
	}

	addFlash(c, flashSuccess, message(lang, msgPageDeleted))
	redirectTo(c, "/admin/pages")
}

func pageEditPath(id uint) string {
	return fmt.Sprintf("/admin/page/%d", id)
}

type sectionJSON struct {
	ID              uint   `json:"id"`
	SectionType     string `json:"section_type"`
	LanguageCode    string `json:"language_code"`
	OrderIndex      int    `json:"order_index"`
	Heading         string `json:"heading"`
	Subheading      string `json:"subheading"`
	Content         string `json:"content"`
	ButtonText      string `json:"button_text"`
	ButtonLink      string `json:"button_link"`
	ImageURL        string `json:"image_url"`
	BackgroundColor string `json:"background_color"`
	IsActive        bool   `json:"is_active"`
}

// PageSectionsJSON 以 JSON 返回页面的全部区块（两种语言，按存储顺序）
func (a *API) PageSectionsJSON(c *gin.Context) {
	lang := requestLanguage(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, message(lang, msgNotFoundTitle))
		return
	}
	page, err := a.pages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, message(lang, msgNotFoundTitle))
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}

	items, err := a.pages.Sections(page.ID)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}
	views := make([]sectionJSON, 0, len(items))
	for _, item := range items {
		views = append(views, sectionJSON{
			ID:              item.ID,
			SectionType:     string(item.SectionType),
			LanguageCode:    string(item.LanguageCode),
			OrderIndex:      item.OrderIndex,
			Heading:         item.Heading,
			Subheading:      item.Subheading,
			Content:         item.Content,
			ButtonText:      item.ButtonText,
			ButtonLink:      item.ButtonLink,
			ImageURL:        item.ImageURL,
			BackgroundColor: item.BackgroundColor,
			IsActive:        item.IsActive,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"page":     gin.H{"id": page.ID, "slug": page.Slug, "title": page.Title},
		"sections": views,
	})
}
