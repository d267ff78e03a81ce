package adapter

import "context"

// ImageStorage stores order images in a blob store.
type ImageStorage interface {
	// Save stores data under key.
	Save(ctx context.Context, key, contentType string, data []byte) error

	// Delete removes the object stored under key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL of key.
	URL(key string) string
}
