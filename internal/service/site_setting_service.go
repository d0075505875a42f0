package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSiteName = "Bellari Concept"

// ErrSettingKeyMissing 表示写入设置时未提供键名。
var ErrSettingKeyMissing = errors.New("setting key is required")

// SocialLink 描述页脚中的一个社交平台链接。
type SocialLink struct {
	Key   string
	Label string
	URL   string
}

// SiteInfo 汇总公开页面渲染时需要的站点级信息。
type SiteInfo struct {
	Name            string
	LogoURL         string
	MetaDescription string
	ShareImage      string
	AnalyticsID     string
	Social          []SocialLink
	WhatsAppNumber  string
	WhatsAppURL     string
	BookingURL      string
	Phone           string
	Email           string
	PWAEnabled      bool
}

// Manifest 对应 /manifest.json 的 PWA 描述。
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
	Icons           []ManifestIcon `json:"icons,omitempty"`
}

// ManifestIcon 是 manifest 中的图标条目。
type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type,omitempty"`
}

// SettingDefault 描述一个缺失时才写入的默认设置。
type SettingDefault struct {
	Key         string `yaml:"key"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

// EditableSettingKeys 是后台设置页面可编辑的键，按表单顺序排列。
var EditableSettingKeys = []string{
	db.SettingKeySiteNameFR,
	db.SettingKeySiteNameEN,
	db.SettingKeyLogoPath,
	db.SettingKeyDefaultMetaDescription,
	db.SettingKeyDefaultShareImage,
	db.SettingKeyAnalyticsID,
	db.SettingKeyFacebookURL,
	db.SettingKeyInstagramURL,
	db.SettingKeyLinkedInURL,
	db.SettingKeyWhatsAppNumber,
	db.SettingKeyBookingURL,
	db.SettingKeyContactPhone,
	db.SettingKeyContactEmail,
	db.SettingKeyPWAEnabled,
	db.SettingKeyPWADisplayMode,
	db.SettingKeyPWAAppName,
	db.SettingKeyPWAShortName,
	db.SettingKeyPWAIconURL,
	db.SettingKeyPWAThemeColor,
	db.SettingKeyPWABackgroundColor,
	db.SettingKeyPWADescription,
	db.SettingKeyPWAStartURL,
}

var socialSettingKeys = []SocialLink{
	{Key: db.SettingKeyFacebookURL, Label: "Facebook"},
	{Key: db.SettingKeyInstagramURL, Label: "Instagram"},
	{Key: db.SettingKeyLinkedInURL, Label: "LinkedIn"},
}

// SiteSettingService 提供站点键值设置的读取与更新能力。
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

// All 返回全部设置的键值映射。
func (s *SiteSettingService) All() (map[string]string, error) {
	var records []db.SiteSetting
	if err := s.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load site settings: %w", err)
	}
	values := make(map[string]string, len(records))
	for _, record := range records {
		values[record.Key] = record.Value
	}
	return values, nil
}

// List 返回全部设置记录，按键名排序。
func (s *SiteSettingService) List() ([]db.SiteSetting, error) {
	var records []db.SiteSetting
	if err := s.db.Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list site settings: %w", err)
	}
	return records, nil
}

// Get 读取单个设置，不存在或为空时返回 fallback。
func (s *SiteSettingService) Get(key, fallback string) (string, error) {
	var record db.SiteSetting
	if err := s.db.Where(&db.SiteSetting{Key: key}).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("load setting %s: %w", key, err)
	}
	if strings.TrimSpace(record.Value) == "" {
		return fallback, nil
	}
	return record.Value, nil
}

// Set 写入单个设置，首次写入时创建记录，之后原地更新。
func (s *SiteSettingService) Set(key, value, description string) error {
	return upsertSetting(s.db, key, value, description)
}

// SetMany 在同一事务中写入多个设置。
func (s *SiteSettingService) SetMany(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := upsertSetting(tx, key, values[key], ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update site settings: %w", err)
	}
	return nil
}

// Site 读取指定语言下的站点信息。
func (s *SiteSettingService) Site(lang locale.Language) (SiteInfo, error) {
	values, err := s.All()
	if err != nil {
		return SiteInfo{Name: defaultSiteName}, err
	}
	return siteInfoFromValues(values, lang), nil
}

// Manifest 根据 PWA 设置生成 manifest。
func (s *SiteSettingService) Manifest() (Manifest, error) {
	values, err := s.All()
	if err != nil {
		return Manifest{}, err
	}
	return manifestFromValues(values), nil
}

func siteInfoFromValues(values map[string]string, lang locale.Language) SiteInfo {
	get := func(key string) string {
		return strings.TrimSpace(values[key])
	}

	info := SiteInfo{
		Name:            locale.Pick(lang, get(db.SettingKeySiteNameFR), get(db.SettingKeySiteNameEN)),
		LogoURL:         get(db.SettingKeyLogoPath),
		MetaDescription: get(db.SettingKeyDefaultMetaDescription),
		ShareImage:      get(db.SettingKeyDefaultShareImage),
		AnalyticsID:     get(db.SettingKeyAnalyticsID),
		WhatsAppNumber:  get(db.SettingKeyWhatsAppNumber),
		BookingURL:      get(db.SettingKeyBookingURL),
		Phone:           get(db.SettingKeyContactPhone),
		Email:           get(db.SettingKeyContactEmail),
		PWAEnabled:      parseSettingBool(get(db.SettingKeyPWAEnabled)),
	}
	if info.Name == "" {
		info.Name = defaultSiteName
	}
	if info.ShareImage == "" {
		info.ShareImage = info.LogoURL
	}
	if digits := phoneDigits(info.WhatsAppNumber); digits != "" {
		info.WhatsAppURL = "https://wa.me/" + digits
	}
	for _, social := range socialSettingKeys {
		if link := get(social.Key); link != "" {
			info.Social = append(info.Social, SocialLink{Key: social.Key, Label: social.Label, URL: link})
		}
	}
	return info
}

// manifestFromValues 在 display_mode 为 custom 时使用 PWA 专属名称与图标，否则沿用站点名称与 Logo。
func manifestFromValues(values map[string]string) Manifest {
	get := func(key, fallback string) string {
		if value := strings.TrimSpace(values[key]); value != "" {
			return value
		}
		return fallback
	}

	siteName := get(db.SettingKeySiteNameFR, defaultSiteName)
	name := siteName
	icon := get(db.SettingKeyLogoPath, "")
	if strings.EqualFold(get(db.SettingKeyPWADisplayMode, "default"), "custom") {
		name = get(db.SettingKeyPWAAppName, siteName)
		icon = get(db.SettingKeyPWAIconURL, icon)
	}

	manifest := Manifest{
		Name:            name,
		ShortName:       get(db.SettingKeyPWAShortName, name),
		Description:     get(db.SettingKeyPWADescription, get(db.SettingKeyDefaultMetaDescription, "")),
		StartURL:        get(db.SettingKeyPWAStartURL, "/"),
		Display:         "standalone",
		ThemeColor:      get(db.SettingKeyPWAThemeColor, "#ffffff"),
		BackgroundColor: get(db.SettingKeyPWABackgroundColor, "#ffffff"),
	}
	if icon != "" {
		iconType := mimeTypeForPath(icon)
		manifest.Icons = []ManifestIcon{
			{Src: icon, Sizes: "192x192", Type: iconType},
			{Src: icon, Sizes: "512x512", Type: iconType},
		}
	}
	return manifest
}

func upsertSetting(tx *gorm.DB, key, value, description string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrSettingKeyMissing
	}

	updates := map[string]interface{}{
		"value":      value,
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	description = strings.TrimSpace(description)
	if description != "" {
		updates["description"] = description
	}

	setting := db.SiteSetting{Key: key, Value: value, Description: description}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func ensureSettingDefaults(tx *gorm.DB, defaults []SettingDefault) (int, error) {
	created := 0
	for _, def := range defaults {
		key := strings.TrimSpace(def.Key)
		if key == "" {
			continue
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&db.SiteSetting{Key: key, Value: def.Value, Description: strings.TrimSpace(def.Description)})
		if result.Error != nil {
			return created, fmt.Errorf("insert default setting %s: %w", key, result.Error)
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

func parseSettingBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func phoneDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func mimeTypeForPath(p string) string {
	lower := strings.ToLower(p)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	}
	return ""
}
