package service

import (
	"errors"
	"testing"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/sections"
)

func TestActiveSectionsFiltersLanguageAndVisibility(t *testing.T) {
	gdb := setupServiceTestDB(t)
	page := createTestPage(t, gdb, db.PageSlugHome, true)

	createTestSection(t, gdb, page.ID, sections.TypeCTA, locale.LanguageFrench, 2, true)
	createTestSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageFrench, 0, true)
	createTestSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageEnglish, 0, true)
	createTestSection(t, gdb, page.ID, sections.TypeText, locale.LanguageFrench, 1, false)

	svc := NewPageService(gdb)
	items, err := svc.ActiveSections(page.ID, locale.LanguageFrench)
	if err != nil {
		t.Fatalf("ActiveSections returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 active french sections, got %d", len(items))
	}
	if items[0].SectionType != sections.TypeHero || items[1].SectionType != sections.TypeCTA {
		t.Fatalf("expected hero then cta, got %s then %s", items[0].SectionType, items[1].SectionType)
	}
	for _, item := range items {
		if item.LanguageCode != locale.LanguageFrench {
			t.Fatalf("unexpected language %s in french sections", item.LanguageCode)
		}
	}

	english, err := svc.ActiveSections(page.ID, locale.LanguageEnglish)
	if err != nil {
		t.Fatalf("ActiveSections returned error: %v", err)
	}
	if len(english) != 1 || english[0].SectionType != sections.TypeHero {
		t.Fatalf("expected only the english hero, got %+v", english)
	}
}

func TestGetActiveBySlugHidesInactivePage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	createTestPage(t, gdb, db.PageSlugPortfolio, false)

	svc := NewPageService(gdb)
	if _, err := svc.GetActiveBySlug(db.PageSlugPortfolio); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound for inactive page, got %v", err)
	}
	if _, err := svc.GetBySlug(db.PageSlugPortfolio); err != nil {
		t.Fatalf("GetBySlug should still find inactive page: %v", err)
	}
}

func TestUpdatePage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	page := createTestPage(t, gdb, db.PageSlugAbout, true)

	svc := NewPageService(gdb)
	updated, err := svc.Update(page.ID, PageInput{Title: "  À propos  ", MetaDescription: "desc", IsActive: false})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "À propos" || updated.MetaDescription != "desc" || updated.IsActive {
		t.Fatalf("unexpected page after update: %+v", updated)
	}

	if _, err := svc.Update(page.ID, PageInput{Title: "   "}); !errors.Is(err, ErrPageTitleMissing) {
		t.Fatalf("expected ErrPageTitleMissing, got %v", err)
	}
	if _, err := svc.Update(9999, PageInput{Title: "x"}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestDeletePageCascadesSections(t *testing.T) {
	gdb := setupServiceTestDB(t)
	page := createTestPage(t, gdb, db.PageSlugServices, true)
	other := createTestPage(t, gdb, db.PageSlugContact, true)

	createTestSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageFrench, 0, true)
	createTestSection(t, gdb, page.ID, sections.TypeHero, locale.LanguageEnglish, 0, true)
	createTestSection(t, gdb, other.ID, sections.TypeContact, locale.LanguageFrench, 0, true)

	svc := NewPageService(gdb)
	if err := svc.Delete(page.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var remaining int64
	gdb.Model(&db.Section{}).Where("page_id = ?", page.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected sections of deleted page to be gone, got %d", remaining)
	}
	gdb.Model(&db.Section{}).Where("page_id = ?", other.ID).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("expected other page sections to survive, got %d", remaining)
	}

	if err := svc.Delete(page.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound on second delete, got %v", err)
	}
}

func TestSectionCounts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	home := createTestPage(t, gdb, db.PageSlugHome, true)
	about := createTestPage(t, gdb, db.PageSlugAbout, true)

	createTestSection(t, gdb, home.ID, sections.TypeHero, locale.LanguageFrench, 0, true)
	createTestSection(t, gdb, home.ID, sections.TypeHero, locale.LanguageEnglish, 0, true)
	createTestSection(t, gdb, about.ID, sections.TypeText, locale.LanguageFrench, 0, true)

	counts, err := NewPageService(gdb).SectionCounts()
	if err != nil {
		t.Fatalf("SectionCounts returned error: %v", err)
	}
	if counts[home.ID] != 2 || counts[about.ID] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
