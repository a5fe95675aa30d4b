package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader хранит бинарные файлы (логотипы команд) во внешнем хранилище.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// LogoExtension возвращает расширение для поддерживаемого типа изображения.
func LogoExtension(contentType string) (string, bool) {
	ext, ok := logoExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// TeamLogoKey строит ключ объекта для логотипа команды.
// Каждая загрузка получает новый ключ, чтобы CDN не отдавал старую картинку.
func TeamLogoKey(teamID uuid.UUID, contentType string) (string, error) {
	ext, ok := LogoExtension(contentType)
	if !ok {
		return "", fmt.Errorf("unsupported logo content type %q", contentType)
	}
	return path.Join("teams", teamID.String(), "logo-"+uuid.NewString()+ext), nil
}
