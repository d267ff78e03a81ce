package order

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/application/adapter"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

const imageKeyPrefix = "products/"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ImageUpload is an image file received with an order.
type ImageUpload struct {
	Filename string
	Data     []byte
}

type imageStore struct {
	storage  adapter.ImageStorage
	maxBytes int64
}

// put sniffs and stores the upload, returning its storage key.
func (s imageStore) put(ctx context.Context, upload *ImageUpload) (string, error) {
	if s.maxBytes > 0 && int64(len(upload.Data)) > s.maxBytes {
		return "", domainerror.NewOrderError(
			domainerror.ErrCodeOrderImageTooLarge,
			fmt.Sprintf("image must not exceed %d bytes", s.maxBytes),
			domainerror.ErrOrderImageTooLarge,
		)
	}

	contentType := http.DetectContentType(upload.Data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", domainerror.NewValidationError(
			domainerror.ErrCodeInvalidOrderImage,
			domainerror.ErrInvalidOrderImage.Error(),
			map[string]string{
				FieldProductImage: "Upload a valid image. The file you uploaded was either not an image or a corrupted image.",
			},
		)
	}

	key := imageKeyPrefix + uuid.NewString() + ext
	if err := s.storage.Save(ctx, key, contentType, upload.Data); err != nil {
		return "", domainerror.NewOrderError(
			domainerror.ErrCodeImageStorage,
			"failed to store order image",
			fmt.Errorf("%w: %w", domainerror.ErrImageStorage, err),
		)
	}

	slog.InfoContext(ctx, "Order image stored", "key", key, "size", len(upload.Data), "filename", upload.Filename)
	return key, nil
}

// remove deletes a stored image. Failures are logged and otherwise ignored.
func (s imageStore) remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "Failed to delete order image", "key", key, "error", err)
	}
}
