package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/sections"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// ErrInitDisabled 表示后台初始化入口未开启。
var ErrInitDisabled = errors.New("database initialization is disabled")

// SeedContent 是默认内容文件的结构。
type SeedContent struct {
	Settings []SettingDefault `yaml:"settings"`
	Pages    []SeedPage       `yaml:"pages"`
}

// SeedPage 描述一个默认页面及其双语区块。
type SeedPage struct {
	Slug            string        `yaml:"slug"`
	Title           string        `yaml:"title"`
	MetaDescription string        `yaml:"meta_description"`
	Sections        []SeedSection `yaml:"sections"`
}

// SeedSection 描述同一位置上的法语与英语区块。
type SeedSection struct {
	Type string          `yaml:"type"`
	FR   SeedSectionText `yaml:"fr"`
	EN   SeedSectionText `yaml:"en"`
}

// SeedSectionText 是单一语言的区块文案。
type SeedSectionText struct {
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	Content    string `yaml:"content"`
	ButtonText string `yaml:"button_text"`
	ButtonLink string `yaml:"button_link"`
	ImageURL   string `yaml:"image_url"`
}

// SeedResult 汇总一次初始化写入的数量。
type SeedResult struct {
	Skipped  bool
	Pages    int
	Sections int
	Settings int
}

// ParseSeedContent 解析 YAML 格式的默认内容。
func ParseSeedContent(raw []byte) (*SeedContent, error) {
	var content SeedContent
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("parse seed content: %w", err)
	}
	for i, page := range content.Pages {
		if strings.TrimSpace(page.Slug) == "" {
			return nil, fmt.Errorf("seed page %d has no slug", i)
		}
		for _, section := range page.Sections {
			if _, err := parseSectionType(section.Type); err != nil {
				return nil, fmt.Errorf("seed page %s: section type %q: %w", page.Slug, section.Type, err)
			}
		}
	}
	return &content, nil
}

// Seeder 在数据库为空时写入默认页面、区块与站点设置。
type Seeder struct {
	db        *gorm.DB
	content   *SeedContent
	allowInit bool
}

// NewSeeder 构造 Seeder。allowInit 控制后台 init-db 入口是否可用。
func NewSeeder(gdb *gorm.DB, content *SeedContent, allowInit bool) *Seeder {
	return &Seeder{db: gdb, content: content, allowInit: allowInit}
}

// InitAllowed 返回后台初始化入口是否开启。
func (s *Seeder) InitAllowed() bool {
	return s.allowInit
}

// InitDatabase 是后台 init-db 入口，未开启时返回 ErrInitDisabled。
func (s *Seeder) InitDatabase(ctx context.Context) (SeedResult, error) {
	if !s.allowInit {
		return SeedResult{}, ErrInitDisabled
	}
	return s.Seed(ctx)
}

// Seed 在同一事务中写入默认内容。已有页面时不再写入页面，
// 缺失的默认设置总会补齐，已有设置保持原值。
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	if s.content == nil {
		return result, errors.New("seed content not loaded")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := ensureSettingDefaults(tx, s.content.Settings)
		if err != nil {
			return err
		}
		result.Settings = created

		var pageCount int64
		if err := tx.Model(&db.Page{}).Count(&pageCount).Error; err != nil {
			return fmt.Errorf("count pages: %w", err)
		}
		if pageCount > 0 {
			result.Skipped = true
			return nil
		}

		for _, seed := range s.content.Pages {
			page := db.Page{
				Slug:            strings.TrimSpace(seed.Slug),
				Title:           strings.TrimSpace(seed.Title),
				MetaDescription: strings.TrimSpace(seed.MetaDescription),
				IsActive:        true,
			}
			if err := tx.Create(&page).Error; err != nil {
				return fmt.Errorf("create page %s: %w", page.Slug, err)
			}
			result.Pages++

			rows := seedSectionRows(page.ID, seed.Sections)
			if len(rows) == 0 {
				continue
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("create sections of page %s: %w", page.Slug, err)
			}
			result.Sections += len(rows)
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return result, nil
}

// seedSectionRows 为每个位置生成法语和英语两行，二者共享同一个 order_index。
func seedSectionRows(pageID uint, items []SeedSection) []db.Section {
	rows := make([]db.Section, 0, len(items)*2)
	for order, item := range items {
		typ, err := parseSectionType(item.Type)
		if err != nil {
			typ = sections.TypeText
		}
		rows = append(rows,
			seedSectionRow(pageID, typ, locale.LanguageFrench, order, item.FR),
			seedSectionRow(pageID, typ, locale.LanguageEnglish, order, item.EN),
		)
	}
	return rows
}

func seedSectionRow(pageID uint, typ sections.Type, lang locale.Language, order int, text SeedSectionText) db.Section {
	row := db.Section{
		PageID:       pageID,
		SectionType:  typ,
		LanguageCode: lang,
		OrderIndex:   order,
	}
	applySectionInput(&row, SectionInput{
		Heading:    text.Heading,
		Subheading: text.Subheading,
		Content:    text.Content,
		ButtonText: text.ButtonText,
		ButtonLink: text.ButtonLink,
		ImageURL:   text.ImageURL,
		IsActive:   true,
	})
	return row
}
