package handler

import (
	"errors"
	"net/http"

	"github.com/bellari/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserIDKey    = "user_id"
	sessionUsernameKey  = "username"
	dashboardImageCount = 6
)

// ShowLoginPage 渲染登录页面，已登录时直接进入后台
func (a *API) ShowLoginPage(c *gin.Context) {
	if sessions.Default(c).Get(sessionUserIDKey) != nil {
		redirectTo(c, "/admin")
		return
	}
	lang := requestLanguage(c)
	a.renderHTML(c, http.StatusOK, "admin_login.html", gin.H{
		"title":   message(lang, msgLoginTitle),
		"flashes": popFlashes(c),
	})
}

// Login 校验账号密码，失败时带提示返回登录页
func (a *API) Login(c *gin.Context) {
	lang := requestLanguage(c)
	user, err := a.auth.Authenticate(c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			c.Error(err)
		}
		addFlash(c, flashError, message(lang, msgInvalidCredentials))
		redirectTo(c, "/admin/login")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		c.Error(err)
		addFlash(c, flashError, message(lang, msgSessionError))
		redirectTo(c, "/admin/login")
		return
	}

	redirectTo(c, "/admin")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	redirectTo(c, "/")
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	lang := requestLanguage(c)

	pages, err := a.pages.List()
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}
	images, err := a.images.Recent(dashboardImageCount)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}
	imageCount, err := a.images.Count()
	if err != nil {
		c.Error(err)
	}
	userCount, err := a.auth.Count()
	if err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"title":       message(lang, msgDashboardTitle),
		"username":    currentUsername(c),
		"pages":       pages,
		"images":      a.imageViews(images),
		"imageCount":  imageCount,
		"userCount":   userCount,
		"initAllowed": a.seeder.InitAllowed(),
		"flashes":     popFlashes(c),
	})
}

// AuthRequired 未登录时带提示跳转到登录页
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			addFlash(c, flashError, message(requestLanguage(c), msgLoginRequired))
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUsername(c *gin.Context) string {
	name, _ := sessions.Default(c).Get(sessionUsernameKey).(string)
	return name
}
