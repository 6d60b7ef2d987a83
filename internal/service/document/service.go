package document

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
	"papertrail/internal/domain/repositories"
)

// ChangeListener is notified after every successful collection mutation so
// live views can recompute. NotifyChanged must not fail the mutation.
type ChangeListener interface {
	NotifyChanged(ctx context.Context, userID string)
}

// Service persists analyzed documents: object bytes first, then the
// record, with a compensating object delete when the record write fails.
type Service struct {
	repo     repositories.DocumentRepository
	store    repositories.ObjectStore
	listener ChangeListener
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a document service. listener may be nil when no live
// view needs notifying.
func NewService(repo repositories.DocumentRepository, store repositories.ObjectStore, listener ChangeListener, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		listener: listener,
		logger:   logger,
		now:      time.Now,
	}
}

// Save uploads the analysis content and persists the document record.
// Nothing is written before this call: the pipeline is side-effect-free
// and Save is where the result becomes durable. On a record-write failure
// the uploaded object is deleted again; if that compensation also fails
// the error reports the orphaned key.
func (s *Service) Save(ctx context.Context, userID string, result *models.AnalysisResult) (*models.Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", domain.ErrValidation)
	}
	if result == nil || len(result.Content.Data) == 0 {
		return nil, fmt.Errorf("%w: nothing to save", domain.ErrValidation)
	}

	key := storageKey(userID, result.Filename, result.Content.MediaType)
	url, err := s.store.Upload(ctx, key, result.Content.Data, result.Content.MediaType)
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", domain.ErrStorage, key, err)
	}

	doc := &models.Document{
		ID:          uuid.New().String(),
		UserID:      userID,
		Filename:    result.Filename,
		FolderPath:  result.FolderPath,
		Tags:        result.FolderTags,
		StorageKey:  key,
		DownloadURL: url,
		Metadata:    result.Metadata,
		Event:       result.Event,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("orphaned object after failed record write",
				"storage_key", key, "create_error", err, "delete_error", delErr)
			return nil, fmt.Errorf("%w: record write failed and object %s could not be removed: %v", domain.ErrPartialWrite, key, err)
		}
		return nil, fmt.Errorf("create document record: %w", err)
	}

	s.notify(ctx, userID)
	s.logger.Info("document saved", "document_id", doc.ID, "user_id", userID, "folder_path", doc.FolderPath)
	return doc, nil
}

// Get returns a document after checking the caller owns it.
func (s *Service) Get(ctx context.Context, userID, id string) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, fmt.Errorf("%w: document %s", domain.ErrIntegrity, id)
	}
	return doc, nil
}

// List returns the caller's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]models.Document, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes the document's stored bytes and its record, in that
// order, after an ownership check. A record delete after a successful
// object delete can still fail; the record then keeps a dangling
// download URL, which the caller may retry.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if doc.StorageKey != "" {
		if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
			return fmt.Errorf("%w: delete object %s: %v", domain.ErrStorage, doc.StorageKey, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document record: %w", err)
	}

	s.notify(ctx, userID)
	s.logger.Info("document deleted", "document_id", id, "user_id", userID)
	return nil
}

func (s *Service) notify(ctx context.Context, userID string) {
	if s.listener != nil {
		s.listener.NotifyChanged(ctx, userID)
	}
}

// storageKey builds a collision-free per-user object key that keeps the
// analyzed filename readable and an extension matching the stored bytes.
func storageKey(userID, filename, contentType string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "document"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-' || r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, base)

	ext := extensionFor(contentType, filename)
	return fmt.Sprintf("documents/%s/%s-%s%s", userID, uuid.New().String(), base, ext)
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "application/pdf":
		return ".pdf"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return filepath.Ext(filename)
}
