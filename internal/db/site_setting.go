package db

import "gorm.io/gorm"

// SiteSetting 存储后台可配置的站点级键值对。
type SiteSetting struct {
	gorm.Model
	Key         string `gorm:"size:100;uniqueIndex;not null"`
	Value       string `gorm:"type:text"`
	Description string `gorm:"size:300"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteNameFR 表示法语站点名称。
	SettingKeySiteNameFR = "site_name_fr"
	// SettingKeySiteNameEN 表示英语站点名称。
	SettingKeySiteNameEN = "site_name_en"
	// SettingKeyLogoPath 表示站点 Logo 路径。
	SettingKeyLogoPath = "logo_path"
	// SettingKeyDefaultMetaDescription 表示默认分享描述。
	SettingKeyDefaultMetaDescription = "default_meta_description"
	// SettingKeyDefaultShareImage 表示默认分享图片。
	SettingKeyDefaultShareImage = "default_share_image"
	// SettingKeyAnalyticsID 表示统计代码 ID。
	SettingKeyAnalyticsID    = "google_analytics_id"
	SettingKeyFacebookURL    = "facebook_url"
	SettingKeyInstagramURL   = "instagram_url"
	SettingKeyLinkedInURL    = "linkedin_url"
	SettingKeyWhatsAppNumber = "whatsapp_number"
	SettingKeyBookingURL     = "booking_url"
	SettingKeyContactPhone   = "contact_phone"
	SettingKeyContactEmail   = "contact_email"

	SettingKeyPWAEnabled         = "pwa_enabled"
	SettingKeyPWADisplayMode     = "pwa_display_mode"
	SettingKeyPWAAppName         = "pwa_app_name"
	SettingKeyPWAShortName       = "pwa_short_name"
	SettingKeyPWAIconURL         = "pwa_icon_url"
	SettingKeyPWAThemeColor      = "pwa_theme_color"
	SettingKeyPWABackgroundColor = "pwa_background_color"
	SettingKeyPWADescription     = "pwa_description"
	SettingKeyPWAStartURL        = "pwa_start_url"
)
