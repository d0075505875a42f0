package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrPageTitleMissing = errors.New("page title is required")
)

// PageService provides access to the marketing pages and their sections.
type PageService struct {
	db *gorm.DB
}

// PageInput carries the editable page fields from the admin form.
type PageInput struct {
	Title           string
	MetaDescription string
	IsActive        bool
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// List returns every page in creation order.
func (s *PageService) List() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("id asc").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// ListActive returns pages visible to the public.
func (s *PageService) ListActive() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Where("is_active = ?", true).Order("id asc").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list active pages: %w", err)
	}
	return pages, nil
}

// Get fetches a page by id.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetActiveBySlug fetches a page only when it is published.
func (s *PageService) GetActiveBySlug(slug string) (*db.Page, error) {
	page, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !page.IsActive {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// Update saves the title, meta description and visibility of a page.
func (s *PageService) Update(id uint, input PageInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPageTitleMissing
	}

	page, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	page.Title = title
	page.MetaDescription = strings.TrimSpace(input.MetaDescription)
	page.IsActive = input.IsActive

	if err := s.db.Save(page).Error; err != nil {
		return nil, fmt.Errorf("update page %d: %w", id, err)
	}
	return page, nil
}

// Delete removes a page together with all of its sections.
func (s *PageService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&db.Section{}).Error; err != nil {
			return fmt.Errorf("delete sections of page %d: %w", id, err)
		}
		if err := tx.Delete(&page).Error; err != nil {
			return fmt.Errorf("delete page %d: %w", id, err)
		}
		return nil
	})
}

// Sections returns every section of a page in both languages, as stored.
func (s *PageService) Sections(pageID uint) ([]db.Section, error) {
	return loadPageSections(s.db, pageID)
}

// ActiveSections returns the visible sections of a page in one language.
func (s *PageService) ActiveSections(pageID uint, lang locale.Language) ([]db.Section, error) {
	var items []db.Section
	if err := s.db.
		Where("page_id = ? AND is_active = ? AND language_code = ?", pageID, true, lang).
		Order("order_index asc").
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load active sections: %w", err)
	}
	return items, nil
}

// SectionCounts returns the number of sections per page id.
func (s *PageService) SectionCounts() (map[uint]int64, error) {
	var rows []struct {
		PageID uint
		Total  int64
	}
	if err := s.db.Model(&db.Section{}).
		Select("page_id, COUNT(*) AS total").
		Group("page_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count sections: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PageID] = row.Total
	}
	return counts, nil
}

func loadPageSections(tx *gorm.DB, pageID uint) ([]db.Section, error) {
	var items []db.Section
	if err := tx.Where("page_id = ?", pageID).
		Order("order_index asc").
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load sections of page %d: %w", pageID, err)
	}
	return items, nil
}
