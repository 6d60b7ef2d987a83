package repositories

import "context"

// ObjectStore defines blob storage for document bytes.
type ObjectStore interface {
	// Upload stores the bytes under the given key and returns a publicly
	// resolvable URL for them.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}
