package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseUintForm(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// formBool 将复选框值解析为布尔值，未提交时为 false。
func formBool(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.PostForm(key))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func detectScheme(c *gin.Context) string {
	if proto := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); proto != "" {
		return strings.ToLower(strings.Split(proto, ",")[0])
	}
	if c.Request != nil && c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// requestBaseURL 返回配置的站点地址，未配置时根据请求推断。
func (a *API) requestBaseURL(c *gin.Context) string {
	if a.baseURL != "" {
		return a.baseURL
	}
	return detectScheme(c) + "://" + c.Request.Host
}

// safeRedirectTarget 只接受站内路径，避免开放重定向。
func safeRedirectTarget(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	path := parsed.EscapedPath()
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return fallback
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return path
}

func redirectTo(c *gin.Context, target string) {
	c.Redirect(http.StatusFound, target)
}
