package handler

import (
	"errors"
	"log"

	"github.com/bellari/internal/service"
	"github.com/gin-gonic/gin"
)

// InitDatabase 写入默认内容并创建配置中的管理员账号，需登录且部署开关开启时可用
func (a *API) InitDatabase(c *gin.Context) {
	lang := requestLanguage(c)

	result, err := a.seeder.InitDatabase(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrInitDisabled) {
			addFlash(c, flashError, message(lang, msgInitDisabled))
			redirectTo(c, "/admin")
			return
		}
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, "/admin")
		return
	}

	if result.Skipped {
		addFlash(c, flashSuccess, message(lang, msgInitSkipped, result.Settings))
	} else {
		log.Printf("database initialized: %d pages, %d sections, %d settings", result.Pages, result.Sections, result.Settings)
		addFlash(c, flashSuccess, message(lang, msgInitDone, result.Pages, result.Sections, result.Settings))
	}

	created, err := a.auth.EnsureUser(a.adminUsername, a.adminPassword)
	switch {
	case errors.Is(err, service.ErrPasswordTooShort):
		addFlash(c, flashError, message(lang, msgInitPasswordTooWeak))
	case err != nil:
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
	case created:
		addFlash(c, flashSuccess, message(lang, msgInitAdminCreated, a.adminUsername))
	case a.adminUsername == "" || a.adminPassword == "":
		addFlash(c, flashError, message(lang, msgInitAdminMissing))
	}

	redirectTo(c, "/admin")
}
