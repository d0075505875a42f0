package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/sections"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func createTestPage(t *testing.T, gdb *gorm.DB, slug string, active bool) db.Page {
	t.Helper()
	page := db.Page{Slug: slug, Title: strings.ToUpper(slug), IsActive: active}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("failed to create page %s: %v", slug, err)
	}
	return page
}

func createTestSection(t *testing.T, gdb *gorm.DB, pageID uint, typ sections.Type, lang locale.Language, order int, active bool) db.Section {
	t.Helper()
	item := db.Section{
		PageID:       pageID,
		SectionType:  typ,
		LanguageCode: lang,
		OrderIndex:   order,
		Heading:      fmt.Sprintf("%s-%s-%d", typ, lang, order),
		IsActive:     active,
	}
	if err := gdb.Create(&item).Error; err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	return item
}
