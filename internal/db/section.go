package db

import (
	"time"

	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/sections"
)

// Section 是页面中按语言区分的一个内容块。
type Section struct {
	ID              uint            `gorm:"primaryKey"`
	PageID          uint            `gorm:"not null;index"`
	SectionType     sections.Type   `gorm:"size:50;not null"`
	LanguageCode    locale.Language `gorm:"size:5;not null;default:fr;index"`
	OrderIndex      int             `gorm:"default:0"`
	Heading         string          `gorm:"size:300"`
	Subheading      string          `gorm:"size:300"`
	Content         string          `gorm:"type:text"`
	ButtonText      string          `gorm:"size:100"`
	ButtonLink      string          `gorm:"size:200"`
	ImageURL        string          `gorm:"size:300"`
	BackgroundColor string          `gorm:"size:20"`
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s Section) SlotType() sections.Type       { return s.SectionType }
func (s Section) SlotLanguage() locale.Language { return s.LanguageCode }
func (s Section) SlotOrder() int                { return s.OrderIndex }
