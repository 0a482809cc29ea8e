// Package storage прячет объектное хранилище логотипов за узким интерфейсом.
package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader реализуется Cloudflare R2 (см. NewCloudflareR2Uploader).
// Сервисы принимают интерфейс: в тестах и без настроенного хранилища
// он может быть nil.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}
