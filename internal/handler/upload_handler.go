package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
	"github.com/bellari/internal/service"
	"github.com/gin-gonic/gin"
)

type imageView struct {
	ID               uint   `json:"id"`
	URL              string `json:"url"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	AltText          string `json:"alt_text,omitempty"`
	FileSize         int64  `json:"file_size"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
}

func (a *API) imageView(item db.Image) imageView {
	return imageView{
		ID:               item.ID,
		URL:              a.images.URL(item),
		Filename:         item.Filename,
		OriginalFilename: item.OriginalFilename,
		AltText:          item.AltText,
		FileSize:         item.FileSize,
		Width:            item.Width,
		Height:           item.Height,
	}
}

func (a *API) imageViews(items []db.Image) []imageView {
	views := make([]imageView, 0, len(items))
	for _, item := range items {
		views = append(views, a.imageView(item))
	}
	return views
}

// ShowImages 渲染图片库
func (a *API) ShowImages(c *gin.Context) {
	lang := requestLanguage(c)
	images, err := a.images.List()
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, message(lang, msgStorageError))
		return
	}

	a.renderHTML(c, http.StatusOK, "admin_images.html", gin.H{
		"title":      message(lang, msgImagesTitle),
		"images":     a.imageViews(images),
		"extensions": service.AllowedImageExtensions,
		"maxBytes":   a.maxUploadBytes,
		"username":   currentUsername(c),
		"flashes":    popFlashes(c),
	})
}

// UploadImage 处理图片上传请求，返回 JSON 结果
func (a *API) UploadImage(c *gin.Context) {
	lang := requestLanguage(c)
	file, ok := a.readUpload(c, lang, "file")
	if !ok {
		return
	}

	item, err := a.images.Upload(file, c.PostForm("alt_text"))
	if err != nil {
		a.respondUploadError(c, lang, err)
		return
	}

	a.metrics.RecordUpload("ok")
	view := a.imageView(*item)
	c.JSON(http.StatusOK, gin.H{"success": true, "url": view.URL, "image": view})
}

// UploadLogo 上传站点 Logo 并更新 logo_path 设置
func (a *API) UploadLogo(c *gin.Context) {
	lang := requestLanguage(c)
	file, ok := a.readUpload(c, lang, "logo", "file")
	if !ok {
		return
	}

	item, err := a.images.UploadLogo(file)
	if err != nil {
		a.respondUploadError(c, lang, err)
		return
	}

	a.metrics.RecordUpload("ok")
	view := a.imageView(*item)
	c.JSON(http.StatusOK, gin.H{"success": true, "url": view.URL, "image": view})
}

// DeleteImage 删除图片记录及文件
func (a *API) DeleteImage(c *gin.Context) {
	lang := requestLanguage(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	if err := a.images.Delete(id); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			a.renderNotFound(c)
			return
		}
		c.Error(err)
		addFlash(c, flashError, message(lang, msgStorageError))
		redirectTo(c, "/admin/images")
		return
	}

	addFlash(c, flashSuccess, message(lang, msgImageDeleted))
	redirectTo(c, "/admin/images")
}

// readUpload 限制请求体大小后读取第一个存在的文件字段。
func (a *API) readUpload(c *gin.Context, lang locale.Language, fields ...string) (*multipart.FileHeader, bool) {
	if a.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.maxUploadBytes)
	}

	for _, field := range fields {
		file, err := c.FormFile(field)
		if err == nil {
			return file, true
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.metrics.RecordUpload("rejected")
			respondError(c, http.StatusRequestEntityTooLarge, message(lang, msgUploadTooLarge))
			return nil, false
		}
	}

	a.metrics.RecordUpload("rejected")
	respondError(c, http.StatusBadRequest, message(lang, msgUploadMissing))
	return nil, false
}

func (a *API) respondUploadError(c *gin.Context, lang locale.Language, err error) {
	switch {
	case errors.Is(err, service.ErrUploadMissing):
		a.metrics.RecordUpload("rejected")
		respondError(c, http.StatusBadRequest, message(lang, msgUploadMissing))
	case errors.Is(err, service.ErrUploadExtension):
		a.metrics.RecordUpload("rejected")
		respondError(c, http.StatusBadRequest, message(lang, msgUploadExtension))
	case errors.Is(err, service.ErrUploadDecode):
		a.metrics.RecordUpload("rejected")
		respondError(c, http.StatusBadRequest, message(lang, msgUploadDecode))
	case errors.Is(err, service.ErrUploadTooLarge):
		a.metrics.RecordUpload("rejected")
		respondError(c, http.StatusRequestEntityTooLarge, message(lang, msgUploadTooLarge))
	default:
		c.Error(err)
		a.metrics.RecordUpload("error")
		respondError(c, http.StatusInternalServerError, message(lang, msgUploadFailed))
	}
}
