package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// UploadResult описывает объект, сохраненный в бакете.
type UploadResult struct {
	Key      string
	Location string // публичный URL объекта
	ETag     string
}

// FileUploader - хранилище картинок бейджей. В БД хранится только ключ,
// публичный URL вычисляется при отдаче бейджа клиенту.
type FileUploader interface {
	// Upload сохраняет объект под key; существующий объект перезаписывается.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete удаляет объект. Отсутствие объекта ошибкой не считается.
	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// BadgeImageKey строит ключ новой картинки бейджа. Каждая загрузка получает
// свой ключ, чтобы CDN не отдавал старую версию из кэша.
func BadgeImageKey(badgeID int, uploadedAt time.Time, ext string) string {
	return fmt.Sprintf("badges/%d/%d%s", badgeID, uploadedAt.UnixNano(), ext)
}
