package model

import "errors"

// UploadResult is the outcome of a successful object-storage upload.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Avatar upload constraints
const (
	MaxAvatarSizeBytes = 5 * 1024 * 1024
	AvatarWidth        = 200
	AvatarHeight       = 200
	AvatarFolder       = "avatars"
	AvatarExt          = ".jpg"
	ContentTypeJPEG    = "image/jpeg"
	AvatarCacheControl = "public, max-age=31536000"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedImageType reports whether the content type is accepted for uploads.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

var (
	// ErrFileTooLarge is returned when an upload exceeds the size limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidImageType is returned for unsupported image content types
	ErrInvalidImageType = errors.New("invalid image type")
)
