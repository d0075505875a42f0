package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/sections"
	"github.com/bellari/internal/service"
)

func TestCreateSectionPairSharesOrderIndex(t *testing.T) {
	api, gdb := newTestAPI(t, Options{})
	page := createPage(t, gdb, db.PageSlugServices, true)
	createSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageFrench, 0)

	router, _ := newTestRouter(api)
	router.POST("/admin/section/create_both", api.CreateSectionPair)

	recorder := serve(router, postForm("/admin/section/create_both", url.Values{
		"page_id":      {fmt.Sprint(page.ID)},
		"section_type": {"service"},
		"fr_heading":   {"Rénovation"},
		"fr_is_active": {"on"},
		"en_heading":   {"Renovation"},
		"en_is_active": {"on"},
	}))
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != pageEditPath(page.ID) {
		t.Fatalf("expected redirect to %s, got %q", pageEditPath(page.ID), location)
	}

	var created []db.Section
	if err := gdb.Where("page_id = ? AND section_type = ?", page.ID, "service").Order("language_code asc").Find(&created).Error; err != nil {
		t.Fatalf("load sections: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected two sections, got %d", len(created))
	}
	if created[0].OrderIndex != created[1].OrderIndex {
		t.Fatalf("expected shared order index, got %d and %d", created[0].OrderIndex, created[1].OrderIndex)
	}
	if created[0].LanguageCode != locale.LanguageEnglish || created[0].Heading != "Renovation" {
		t.Fatalf("unexpected english row: %+v", created[0])
	}
	if created[1].LanguageCode != locale.LanguageFrench || created[1].Heading != "Rénovation" {
		t.Fatalf("unexpected french row: %+v", created[1])
	}
}

func TestCreateSectionRejectsUnknownLanguage(t *testing.T) {
	api, gdb := newTestAPI(t, Options{})
	page := createPage(t, gdb, db.PageSlugHome, true)

	router, _ := newTestRouter(api)
	router.POST("/admin/section/create", api.CreateSection)

	recorder := serve(router, postForm("/admin/section/create", url.Values{
		"page_id":       {fmt.Sprint(page.ID)},
		"section_type":  {"text"},
		"language_code": {"de"},
	}))
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", recorder.Code)
	}

	var count int64
	gdb.Model(&db.Section{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no section to be created, got %d", count)
	}
}

func TestCreateSectionUnknownPageIsNotFound(t *testing.T) {
	api, _ := newTestAPI(t, Options{})
	router, htmlRender := newTestRouter(api)
	router.POST("/admin/section/create", api.CreateSection)

	recorder := serve(router, postForm("/admin/section/create", url.Values{
		"page_id":       {"999"},
		"section_type":  {"text"},
		"language_code": {"fr"},
	}))
	if recorder.Code != http.StatusNotFound || htmlRender.name != "not_found.html" {
		t.Fatalf("expected not found, got %d %q", recorder.Code, htmlRender.name)
	}
}

func TestUpdateSectionKeepsTypeAndLanguage(t *testing.T) {
	api, gdb := newTestAPI(t, Options{})
	page := createPage(t, gdb, db.PageSlugAbout, true)
	item := createSection(t, gdb, page.ID, sections.TypeIntro, locale.LanguageEnglish, 3)

	router, _ := newTestRouter(api)
	router.POST("/admin/section/:id/update", api.UpdateSection)

	recorder := serve(router, postForm(fmt.Sprintf("/admin/section/%d/update", item.ID), url.Values{
		"heading":       {"About us"},
		"section_type":  {"hero"},
		"language_code": {"fr"},
	}))
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", recorder.Code)
	}

	var stored db.Section
	if err := gdb.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("load section: %v", err)
	}
	if stored.Heading != "About us" || stored.IsActive {
		t.Fatalf("expected heading update and unchecked active box, got %+v", stored)
	}
	if stored.SectionType != sections.TypeIntro || stored.LanguageCode != locale.LanguageEnglish || stored.OrderIndex != 3 {
		t.Fatalf("type, language and order must not change, got %+v", stored)
	}
}

func TestNormalizeSectionsRenumbersPage(t *testing.T) {
	api, gdb := newTestAPI(t, Options{})
	page := createPage(t, gdb, db.PageSlugHome, true)
	createSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageFrench, 4)
	createSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageEnglish, 9)
	createSection(t, gdb, page.ID, sections.TypeCTA, locale.LanguageFrench, 12)

	router, _ := newTestRouter(api)
	router.GET("/admin/normalize-sections", api.NormalizeSections)

	recorder := serve(router, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/normalize-sections?page_id=%d", page.ID), nil))
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", recorder.Code)
	}

	pairs, err := service.NewSectionService(gdb).Pairs(page.ID)
	if err != nil {
		t.Fatalf("Pairs returned error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected hero pair and cta slot, got %d", len(pairs))
	}
	if pairs[0].FR == nil || pairs[0].EN == nil || pairs[0].Key.OrderIndex != 0 {
		t.Fatalf("expected hero fr/en paired at 0, got %+v", pairs[0])
	}
	if pairs[1].Key.OrderIndex != 1 || pairs[1].EN != nil {
		t.Fatalf("expected lone cta at 1, got %+v", pairs[1])
	}
}

func TestDeletePageRemovesSections(t *testing.T) {
	api, gdb := newTestAPI(t, Options{})
	page := createPage(t, gdb, db.PageSlugPortfolio, true)
	createSection(t, gdb, page.ID, sections.TypeGallery, locale.LanguageFrench, 0)
	createSection(t, gdb, page.ID, sections.TypeGallery, locale.LanguageEnglish, 0)

	router, _ := newTestRouter(api)
	router.POST("/admin/page/:id/delete", api.DeletePage)

	recorder := serve(router, postForm(fmt.Sprintf("/admin/page/%d/delete", page.ID), nil))
	if recorder.Header().Get("Location") != "/admin/pages" {
		t.Fatalf("expected redirect to /admin/pages, got %q", recorder.Header().Get("Location"))
	}

	var count int64
	gdb.Model(&db.Section{}).Where("page_id = ?", page.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected sections to be deleted with the page, got %d", count)
	}
}

func TestShowPageEditBuildsPairs(t *testing.T) {
	api, gdb := newTestAPI(t, Options{})
	page := createPage(t, gdb, db.PageSlugHome, true)
	createSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageFrench, 0)
	createSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageEnglish, 0)

	router, htmlRender := newTestRouter(api)
	router.GET("/admin/page/:id", api.ShowPageEdit)

	recorder := serve(router, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/page/%d", page.ID), nil))
	if recorder.Code != http.StatusOK || htmlRender.name != "admin_page_edit.html" {
		t.Fatalf("expected page editor, got %d %q", recorder.Code, htmlRender.name)
	}
	if _, ok := htmlRender.data["pairs"]; !ok {
		t.Fatal("expected pairs in template data")
	}

	missing := serve(router, httptest.NewRequest(http.MethodGet, "/admin/page/999", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown page, got %d", missing.Code)
	}
}

func TestPageSectionsJSONListsBothLanguages(t *testing.T) {
	api, gdb := newTestAPI(t, Options{})
	page := createPage(t, gdb, db.PageSlugAbout, true)
	createSection(t, gdb, page.ID, sections.TypeIntro, locale.LanguageEnglish, 1)
	createSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageFrench, 0)

	router, _ := newTestRouter(api)
	router.GET("/admin/page/:id/sections", api.PageSectionsJSON)

	recorder := serve(router, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/page/%d/sections", page.ID), nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var payload struct {
		Success  bool          `json:"success"`
		Sections []sectionJSON `json:"sections"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Success || len(payload.Sections) != 2 {
		t.Fatalf("expected two sections, got %+v", payload)
	}
	if payload.Sections[0].SectionType != "hero" || payload.Sections[1].LanguageCode != "en" {
		t.Fatalf("expected sections in stored order, got %+v", payload.Sections)
	}

	missing := serve(router, httptest.NewRequest(http.MethodGet, "/admin/page/999/sections", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown page, got %d", missing.Code)
	}
}

func TestUpdateSettingsStoresCheckboxAsFalse(t *testing.T) {
	api, _ := newTestAPI(t, Options{})
	if err := api.settings.Set(db.SettingKeyPWAEnabled, "true", ""); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	router, _ := newTestRouter(api)
	router.POST("/admin/settings", api.UpdateSettings)

	recorder := serve(router, postForm("/admin/settings", url.Values{
		db.SettingKeyContactPhone: {" +33 6 12 34 56 78 "},
	}))
	if recorder.Header().Get("Location") != "/admin/settings" {
		t.Fatalf("expected redirect to /admin/settings, got %q", recorder.Header().Get("Location"))
	}

	values, err := api.settings.All()
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if values[db.SettingKeyPWAEnabled] != "false" {
		t.Fatalf("expected unchecked pwa_enabled to be stored as false, got %q", values[db.SettingKeyPWAEnabled])
	}
	if values[db.SettingKeyContactPhone] != "+33 6 12 34 56 78" {
		t.Fatalf("expected trimmed phone, got %q", values[db.SettingKeyContactPhone])
	}
}
