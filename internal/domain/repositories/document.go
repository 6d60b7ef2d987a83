package repositories

import (
	"context"

	"papertrail/internal/domain/models"
)

// DocumentRepository defines data access operations for document records.
type DocumentRepository interface {
	// Create persists a new document record.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// Delete removes a document record.
	Delete(ctx context.Context, id string) error

	// ListByUser returns all documents owned by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
}
