package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

type flashMessage struct {
	Category string
	Message  string
}

// addFlash 把一次性提示写入会话，下一次页面渲染时展示。
func addFlash(c *gin.Context, category, text string) {
	session := sessions.Default(c)
	session.AddFlash(text, category)
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}

func popFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)
	var out []flashMessage
	for _, category := range []string{flashError, flashSuccess} {
		for _, raw := range session.Flashes(category) {
			if text, ok := raw.(string); ok && text != "" {
				out = append(out, flashMessage{Category: category, Message: text})
			}
		}
	}
	if len(out) > 0 {
		if err := session.Save(); err != nil {
			c.Error(err)
		}
	}
	return out
}
