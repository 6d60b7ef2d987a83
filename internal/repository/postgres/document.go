package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
	"papertrail/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new document record. Metadata and the event block are
// stored as JSONB, tags as a text array.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("encode document metadata: %w", err)
	}
	event, err := json.Marshal(doc.Event)
	if err != nil {
		return fmt.Errorf("encode document event: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, filename, folder_path, tags, storage_key, download_url, metadata, event, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Documents)

	_, err = r.pool.Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Filename,
		doc.FolderPath,
		doc.Tags,
		doc.StorageKey,
		doc.DownloadURL,
		metadata,
		event,
		doc.CreatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("document %s already exists: %w", doc.ID, domain.ErrValidation)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, filename, folder_path, tags, storage_key, download_url, metadata, event, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	var (
		doc      models.Document
		metadata []byte
		event    []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Filename,
		&doc.FolderPath,
		&doc.Tags,
		&doc.StorageKey,
		&doc.DownloadURL,
		&metadata,
		&event,
		&doc.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	if err := decodeBlocks(&doc, metadata, event); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Delete removes a document record
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByUser returns all documents owned by a user, newest first
func (r *PostgresDocumentRepository) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, filename, folder_path, tags, storage_key, download_url, metadata, event, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, r.tables.Documents)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var (
			doc      models.Document
			metadata []byte
			event    []byte
		)
		err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.Filename,
			&doc.FolderPath,
			&doc.Tags,
			&doc.StorageKey,
			&doc.DownloadURL,
			&metadata,
			&event,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := decodeBlocks(&doc, metadata, event); err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return documents, nil
}

func decodeBlocks(doc *models.Document, metadata, event []byte) error {
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			return fmt.Errorf("decode document metadata: %w", err)
		}
	}
	if len(event) > 0 {
		if err := json.Unmarshal(event, &doc.Event); err != nil {
			return fmt.Errorf("decode document event: %w", err)
		}
	}
	return nil
}
