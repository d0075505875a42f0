package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bellari/internal/db"
)

func newTestFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to read multipart form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func countImageRows(t *testing.T, svc *ImageService) int64 {
	t.Helper()
	total, err := svc.Count()
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	return total
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	gdb := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewImageService(gdb, dir, "/static/uploads", 1<<20)

	_, err := svc.Upload(newTestFileHeader(t, "malware.exe", []byte("MZ\x90\x00")), "")
	if !errors.Is(err, ErrUploadExtension) {
		t.Fatalf("expected ErrUploadExtension, got %v", err)
	}
	if total := countImageRows(t, svc); total != 0 {
		t.Fatalf("expected no image rows, got %d", total)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no stored files, got %d", len(entries))
	}
}

func TestUploadStoresImage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewImageService(gdb, dir, "/static/uploads/", 1<<20)

	content := testPNG(t, 3, 2)
	item, err := svc.Upload(newTestFileHeader(t, "photo.png", content), " Chantier ")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if item.Width != 3 || item.Height != 2 {
		t.Fatalf("expected 3x2 image, got %dx%d", item.Width, item.Height)
	}
	if item.FileSize != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), item.FileSize)
	}
	if item.OriginalFilename != "photo.png" || item.AltText != "Chantier" {
		t.Fatalf("unexpected metadata: %+v", item)
	}
	if !strings.HasSuffix(item.Filename, "_photo.png") {
		t.Fatalf("expected stored name to keep the original name, got %s", item.Filename)
	}

	url := svc.URL(*item)
	if url != "/static/uploads/"+item.Filename {
		t.Fatalf("unexpected url %s", url)
	}
	stored, err := os.ReadFile(filepath.Join(dir, item.Filename))
	if err != nil {
		t.Fatalf("expected stored file: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Fatal("stored file content differs from upload")
	}
	if total := countImageRows(t, svc); total != 1 {
		t.Fatalf("expected one image row, got %d", total)
	}
}

func TestUploadAcceptsNonASCIIName(t *testing.T) {
	gdb := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewImageService(gdb, dir, "/static/uploads", 1<<20)

	item, err := svc.Upload(newTestFileHeader(t, "日本.png", testPNG(t, 2, 2)), "")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if item.OriginalFilename != "image.png" || !strings.HasSuffix(item.Filename, "_image.png") {
		t.Fatalf("expected generated name with png extension, got %+v", item)
	}
	if _, err := os.Stat(filepath.Join(dir, item.Filename)); err != nil {
		t.Fatalf("expected stored file: %v", err)
	}
}

func TestUploadRemovesFileWhenRecordFails(t *testing.T) {
	gdb := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewImageService(gdb, dir, "/static/uploads", 1<<20)

	if err := gdb.Migrator().DropTable(&db.Image{}); err != nil {
		t.Fatalf("DropTable returned error: %v", err)
	}
	if _, err := svc.Upload(newTestFileHeader(t, "photo.png", testPNG(t, 2, 2)), ""); err == nil {
		t.Fatal("expected error when the image table is missing")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no stored files, got %d", len(entries))
	}
}

func TestUploadValidation(t *testing.T) {
	gdb := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewImageService(gdb, dir, "/static/uploads", 64)

	if _, err := svc.Upload(nil, ""); !errors.Is(err, ErrUploadMissing) {
		t.Fatalf("expected ErrUploadMissing, got %v", err)
	}
	if _, err := svc.Upload(newTestFileHeader(t, "big.png", bytes.Repeat([]byte{1}, 200)), ""); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge, got %v", err)
	}
	if _, err := svc.Upload(newTestFileHeader(t, "fake.png", []byte("not an image")), ""); !errors.Is(err, ErrUploadDecode) {
		t.Fatalf("expected ErrUploadDecode, got %v", err)
	}
	if total := countImageRows(t, svc); total != 0 {
		t.Fatalf("expected no image rows, got %d", total)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no stored files, got %d", len(entries))
	}
}

func TestUploadLogoUpdatesSetting(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewImageService(gdb, t.TempDir(), "/static/uploads", 1<<20)

	item, err := svc.UploadLogo(newTestFileHeader(t, "Mon Logo.PNG", testPNG(t, 4, 4)))
	if err != nil {
		t.Fatalf("UploadLogo returned error: %v", err)
	}
	if !strings.HasPrefix(item.Filename, "logo_") || !strings.HasSuffix(item.Filename, ".png") {
		t.Fatalf("unexpected logo filename %s", item.Filename)
	}

	logo, err := NewSiteSettingService(gdb).Get(db.SettingKeyLogoPath, "")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if logo != svc.URL(*item) {
		t.Fatalf("expected logo setting %s, got %s", svc.URL(*item), logo)
	}
}

func TestDeleteImageRemovesFile(t *testing.T) {
	gdb := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewImageService(gdb, dir, "/static/uploads", 1<<20)

	item, err := svc.Upload(newTestFileHeader(t, "photo.jpg", testPNG(t, 2, 2)), "")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if err := svc.Delete(item.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, item.Filename)); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err: %v", err)
	}
	if err := svc.Delete(item.ID); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.png":              "photo.png",
		"../../etc/passwd.png":   "passwd.png",
		"C:\\Users\\me\\a b.jpg": "a_b.jpg",
		"été 2024.webp":          "t_2024.webp",
		"...":                    "image",
		"日本.png":                 "image.png",
		".png":                   "image.png",
	}
	for input, want := range cases {
		if got := sanitizeFilename(input); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDeleteImageCommitsBeforeRemovingFile(t *testing.T) {
	gdb := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewImageService(gdb, dir, "/static/uploads", 1<<20)

	item, err := svc.Upload(newTestFileHeader(t, "photo.png", testPNG(t, 2, 2)), "")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	// 用非空目录替换文件，使删除文件失败
	target := filepath.Join(dir, item.Filename)
	if err := os.Remove(target); err != nil {
		t.Fatalf("remove file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(target, "keep"), 0o755); err != nil {
		t.Fatalf("create blocking dir: %v", err)
	}

	if err := svc.Delete(item.ID); err == nil {
		t.Fatal("expected file removal error")
	}
	if total := countImageRows(t, svc); total != 0 {
		t.Fatalf("expected the row deletion to be committed, got %d rows", total)
	}
}
