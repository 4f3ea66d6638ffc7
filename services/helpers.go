package services

import (
	"fmt"
	"strings"
)

// imageExtension возвращает расширение файла для поддерживаемых типов картинок.
func imageExtension(contentType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, contentType)
	}
}
