package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/sections"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound        = errors.New("section not found")
	ErrSectionTypeInvalid     = errors.New("section type is invalid")
	ErrSectionLanguageInvalid = errors.New("section language is invalid")
)

// SectionService handles section CRUD plus bilingual pairing and ordering.
type SectionService struct {
	db *gorm.DB
}

// SectionInput represents the editable content of one section.
type SectionInput struct {
	Heading         string
	Subheading      string
	Content         string
	ButtonText      string
	ButtonLink      string
	ImageURL        string
	BackgroundColor string
	IsActive        bool
}

// CreateSectionInput describes a new single-language section.
type CreateSectionInput struct {
	PageID   uint
	Type     string
	Language string
	SectionInput
}

// CreatePairInput describes a new section created in both languages at once.
type CreatePairInput struct {
	PageID uint
	Type   string
	FR     SectionInput
	EN     SectionInput
}

// NormalizeResult reports how many rows of a page were renumbered.
type NormalizeResult struct {
	PageID  uint
	Slug    string
	Total   int
	Changed int
}

// NewSectionService creates a SectionService instance.
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// Get fetches a section by id.
func (s *SectionService) Get(id uint) (*db.Section, error) {
	var item db.Section
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update overwrites the content fields of a section.
func (s *SectionService) Update(id uint, input SectionInput) (*db.Section, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	applySectionInput(item, input)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update section %d: %w", id, err)
	}
	return item, nil
}

// Create appends a section to a page. Its order index is the number of sections
// the page already has.
func (s *SectionService) Create(input CreateSectionInput) (*db.Section, error) {
	typ, err := parseSectionType(input.Type)
	if err != nil {
		return nil, err
	}
	lang := locale.DefaultLanguage
	if strings.TrimSpace(input.Language) != "" {
		lang = locale.NormalizeLanguage(input.Language)
		if lang == "" {
			return nil, ErrSectionLanguageInvalid
		}
	}

	var item db.Section
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensurePageExists(tx, input.PageID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&db.Section{}).Where("page_id = ?", input.PageID).Count(&count).Error; err != nil {
			return fmt.Errorf("count sections: %w", err)
		}

		item = db.Section{
			PageID:       input.PageID,
			SectionType:  typ,
			LanguageCode: lang,
			OrderIndex:   int(count),
		}
		applySectionInput(&item, input.SectionInput)

		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create section: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreatePair creates a French and an English section sharing a new order slot
// after every existing section of the page.
func (s *SectionService) CreatePair(input CreatePairInput) ([]db.Section, error) {
	typ, err := parseSectionType(input.Type)
	if err != nil {
		return nil, err
	}

	var created []db.Section
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensurePageExists(tx, input.PageID); err != nil {
			return err
		}

		next, err := nextOrderIndex(tx, input.PageID)
		if err != nil {
			return err
		}

		frItem := db.Section{PageID: input.PageID, SectionType: typ, LanguageCode: locale.LanguageFrench, OrderIndex: next}
		applySectionInput(&frItem, input.FR)
		enItem := db.Section{PageID: input.PageID, SectionType: typ, LanguageCode: locale.LanguageEnglish, OrderIndex: next}
		applySectionInput(&enItem, input.EN)

		created = []db.Section{frItem, enItem}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create section pair: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes a section and returns the deleted row.
func (s *SectionService) Delete(id uint) (*db.Section, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(&db.Section{}, item.ID).Error; err != nil {
		return nil, fmt.Errorf("delete section %d: %w", id, err)
	}
	return item, nil
}

// Pairs groups the sections of a page into French/English pairs for editing.
func (s *SectionService) Pairs(pageID uint) ([]sections.Pairing[db.Section], error) {
	items, err := loadPageSections(s.db, pageID)
	if err != nil {
		return nil, err
	}
	return sections.Pair(items), nil
}

// Normalize renumbers the sections of one page in a single transaction.
func (s *SectionService) Normalize(pageID uint) (NormalizeResult, error) {
	var result NormalizeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.First(&page, pageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}

		var err error
		result, err = normalizePage(tx, page)
		return err
	})
	if err != nil {
		return NormalizeResult{}, err
	}
	return result, nil
}

// NormalizeAll renumbers the sections of every page. Either every page is
// renumbered or nothing is written.
func (s *SectionService) NormalizeAll() ([]NormalizeResult, error) {
	var results []NormalizeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var pages []db.Page
		if err := tx.Order("id asc").Find(&pages).Error; err != nil {
			return fmt.Errorf("list pages: %w", err)
		}

		results = make([]NormalizeResult, 0, len(pages))
		for _, page := range pages {
			result, err := normalizePage(tx, page)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func normalizePage(tx *gorm.DB, page db.Page) (NormalizeResult, error) {
	items, err := loadPageSections(tx, page.ID)
	if err != nil {
		return NormalizeResult{}, err
	}

	orders := sections.Normalize(items)
	result := NormalizeResult{PageID: page.ID, Slug: page.Slug, Total: len(items), Changed: sections.Changed(items, orders)}

	for i, item := range items {
		if item.OrderIndex == orders[i] {
			continue
		}
		if err := tx.Model(&db.Section{}).
			Where("id = ?", item.ID).
			Update("order_index", orders[i]).Error; err != nil {
			return NormalizeResult{}, fmt.Errorf("renumber section %d: %w", item.ID, err)
		}
	}

	return result, nil
}

func applySectionInput(item *db.Section, input SectionInput) {
	item.Heading = strings.TrimSpace(input.Heading)
	item.Subheading = strings.TrimSpace(input.Subheading)
	item.Content = strings.TrimSpace(input.Content)
	item.ButtonText = strings.TrimSpace(input.ButtonText)
	item.ButtonLink = strings.TrimSpace(input.ButtonLink)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.BackgroundColor = strings.TrimSpace(input.BackgroundColor)
	item.IsActive = input.IsActive
}

func parseSectionType(raw string) (sections.Type, error) {
	if strings.TrimSpace(raw) == "" {
		return sections.TypeText, nil
	}
	typ, ok := sections.ParseType(raw)
	if !ok {
		return "", ErrSectionTypeInvalid
	}
	return typ, nil
}

func ensurePageExists(tx *gorm.DB, pageID uint) error {
	var count int64
	if err := tx.Model(&db.Page{}).Where("id = ?", pageID).Count(&count).Error; err != nil {
		return fmt.Errorf("check page: %w", err)
	}
	if count == 0 {
		return ErrPageNotFound
	}
	return nil
}

func nextOrderIndex(tx *gorm.DB, pageID uint) (int, error) {
	var count int64
	if err := tx.Model(&db.Section{}).Where("page_id = ?", pageID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count sections: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	var maxOrder int
	if err := tx.Model(&db.Section{}).
		Where("page_id = ?", pageID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, fmt.Errorf("read max order index: %w", err)
	}
	return maxOrder + 1, nil
}
