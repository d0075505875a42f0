package service

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bellari/internal/db"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
)

var (
	ErrImageNotFound   = errors.New("image not found")
	ErrUploadMissing   = errors.New("upload file is required")
	ErrUploadExtension = errors.New("upload file type is not allowed")
	ErrUploadTooLarge  = errors.New("upload file is too large")
	ErrUploadDecode    = errors.New("upload file is not a readable image")
)

// AllowedImageExtensions lists the accepted upload extensions without the dot.
var AllowedImageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ImageService stores uploaded images on disk and records their metadata.
type ImageService struct {
	db        *gorm.DB
	uploadDir string
	uploadURL string
	maxBytes  int64
}

// NewImageService creates an ImageService writing into uploadDir, served under uploadURL.
func NewImageService(gdb *gorm.DB, uploadDir, uploadURL string, maxBytes int64) *ImageService {
	return &ImageService{
		db:        gdb,
		uploadDir: uploadDir,
		uploadURL: strings.TrimRight(uploadURL, "/"),
		maxBytes:  maxBytes,
	}
}

// URL returns the public URL of a stored image.
func (s *ImageService) URL(item db.Image) string {
	return s.uploadURL + "/" + item.Filename
}

// List returns every image, newest first.
func (s *ImageService) List() ([]db.Image, error) {
	return s.Recent(0)
}

// Recent returns at most limit images, newest first. A non-positive limit returns all.
func (s *ImageService) Recent(limit int) ([]db.Image, error) {
	query := s.db.Order("uploaded_at desc").Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var items []db.Image
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return items, nil
}

// Count returns the number of stored images.
func (s *ImageService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&db.Image{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return total, nil
}

// Upload validates and stores an uploaded image, then records it.
func (s *ImageService) Upload(file *multipart.FileHeader, altText string) (*db.Image, error) {
	var item *db.Image
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.store(tx, file, altText, "")
		return err
	})
	if err != nil {
		if item != nil {
			os.Remove(filepath.Join(s.uploadDir, item.Filename))
		}
		return nil, err
	}
	return item, nil
}

// UploadLogo stores an uploaded logo and points the logo setting at it.
func (s *ImageService) UploadLogo(file *multipart.FileHeader) (*db.Image, error) {
	var item *db.Image
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.store(tx, file, "Logo", "logo")
		if err != nil {
			return err
		}
		return upsertSetting(tx, db.SettingKeyLogoPath, s.URL(*item), "Logo")
	})
	if err != nil {
		if item != nil {
			os.Remove(filepath.Join(s.uploadDir, item.Filename))
		}
		return nil, err
	}
	return item, nil
}

// Delete removes the image record, then its stored file once the removal is committed.
func (s *ImageService) Delete(id uint) error {
	var item db.Image
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrImageNotFound
			}
			return err
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("delete image %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.uploadDir, item.Filename)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// store writes the file to disk and inserts its row with tx. The file is removed
// again if anything after the write fails.
func (s *ImageService) store(tx *gorm.DB, file *multipart.FileHeader, altText, prefix string) (item *db.Image, err error) {
	if file == nil || strings.TrimSpace(file.Filename) == "" {
		return nil, ErrUploadMissing
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(uploadBaseName(file.Filename)), "."))
	if !AllowedImageExtension(ext) {
		return nil, ErrUploadExtension
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return nil, ErrUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, ErrUploadDecode
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	original := sanitizeFilename(file.Filename)
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	filename := token + "_" + original
	if prefix != "" {
		filename = prefix + "_" + token + "." + ext
	}
	target := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(target)
		}
	}()

	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	item = &db.Image{
		Filename:         filename,
		OriginalFilename: original,
		AltText:          strings.TrimSpace(altText),
		FileSize:         written,
		Width:            cfg.Width,
		Height:           cfg.Height,
	}
	if err = tx.Create(item).Error; err != nil {
		return nil, fmt.Errorf("record image: %w", err)
	}
	return item, nil
}

// AllowedImageExtension reports whether ext (without dot, any case) may be uploaded.
func AllowedImageExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func uploadBaseName(name string) string {
	return filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
}

// sanitizeFilename keeps the base name of an upload and drops anything that is
// not safe in a URL path segment. A stem with nothing left becomes "image" and
// the extension is kept.
func sanitizeFilename(name string) string {
	base := uploadBaseName(name)
	ext := path.Ext(base)
	stem := cleanFilenamePart(strings.TrimSuffix(base, ext))
	ext = unsafeFilenameChars.ReplaceAllString(strings.TrimPrefix(ext, "."), "")
	if stem == "" {
		stem = "image"
	}
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

func cleanFilenamePart(part string) string {
	part = strings.ReplaceAll(part, " ", "_")
	part = unsafeFilenameChars.ReplaceAllString(part, "")
	return strings.TrimLeft(part, "._")
}
