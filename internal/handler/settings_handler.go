package handler

import (
	"net/http"
	"strings"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/service"
	"github.com/gin-gonic/gin"
)

type settingField struct {
	Key         string
	Value       string
	Description string
}

// ShowSettings 渲染站点设置表单
func (a *API) ShowSettings(c *gin.Context) {
	lang := requestLanguage(c)
	records, err := a.settings.List()
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}

	values := make(map[string]string, len(records))
	descriptions := make(map[string]string, len(records))
	for _, record := range records {
		values[record.Key] = record.Value
		descriptions[record.Key] = record.Description
	}

	fields := make([]settingField, 0, len(service.EditableSettingKeys))
	for _, key := range service.EditableSettingKeys {
		fields = append(fields, settingField{Key: key, Value: values[key], Description: descriptions[key]})
	}

	a.renderHTML(c, http.StatusOK, "admin_settings.html", gin.H{
		"title":      message(lang, msgSettingsTitle),
		"fields":     fields,
		"values":     values,
		"pwaEnabled": values[db.SettingKeyPWAEnabled] == "true",
		"username":   currentUsername(c),
		"flashes":    popFlashes(c),
	})
}

// UpdateSettings 在同一事务中保存提交的设置项
func (a *API) UpdateSettings(c *gin.Context) {
	lang := requestLanguage(c)

	values := make(map[string]string, len(service.EditableSettingKeys))
	for _, key := range service.EditableSettingKeys {
		if key == db.SettingKeyPWAEnabled {
			continue
		}
		if value, ok := c.GetPostForm(key); ok {
			values[key] = strings.TrimSpace(value)
		}
	}
	values[db.SettingKeyPWAEnabled] = "false"
	if formBool(c, db.SettingKeyPWAEnabled) {
		values[db.SettingKeyPWAEnabled] = "true"
	}

	if err := a.settings.SetMany(values); err != nil {
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, "/admin/settings")
		return
	}

	addFlash(c, flashSuccess, message(lang, msgSettingsSaved))
	redirectTo(c, "/admin/settings")
}
