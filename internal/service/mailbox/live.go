package mailbox

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"papertrail/internal/domain/models"
	"papertrail/internal/domain/repositories"
)

// Live is one user's live mailbox view: the current document collection
// and the folder tree derived from it. Every change notification replaces
// the collection and rebuilds the tree from scratch — recompute, don't
// patch. Reads and updates are safe for concurrent use.
type Live struct {
	mu        sync.RWMutex
	documents []models.Document
	tree      *models.FolderNode
}

// NewLive creates an empty live view.
func NewLive() *Live {
	return &Live{tree: BuildTree(nil)}
}

// Apply replaces the collection with the pushed state and rebuilds the
// tree wholesale.
func (l *Live) Apply(documents []models.Document) {
	tree := BuildTree(documents)

	l.mu.Lock()
	l.documents = documents
	l.tree = tree
	l.mu.Unlock()
}

// Tree returns the current folder tree.
func (l *Live) Tree() *models.FolderNode {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree
}

// Documents returns the current collection, newest first.
func (l *Live) Documents() []models.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.documents
}

// Service maintains the per-user live views and answers browse queries.
// It is the push target for collection changes: the document service
// notifies it after every create and delete.
type Service struct {
	repo   repositories.DocumentRepository
	logger *slog.Logger

	mu    sync.Mutex
	views map[string]*Live
}

// NewService creates a mailbox service over the document repository.
func NewService(repo repositories.DocumentRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		views:  make(map[string]*Live),
	}
}

// viewFor returns the user's live view, seeding it from the repository on
// first access. A view is only published to the map after it is seeded, so
// a concurrent first access never observes a transient empty mailbox.
func (s *Service) viewFor(ctx context.Context, userID string) (*Live, error) {
	s.mu.Lock()
	view, ok := s.views[userID]
	s.mu.Unlock()
	if ok {
		return view, nil
	}

	documents, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("seed mailbox view: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.views[userID]; ok {
		// Lost the seeding race; the published view is already seeded.
		return existing, nil
	}
	view = NewLive()
	view.Apply(documents)
	s.views[userID] = view
	return view, nil
}

// NotifyChanged pushes the user's current collection into their live view.
// Called by the document service after every add and remove.
func (s *Service) NotifyChanged(ctx context.Context, userID string) {
	documents, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		// The view keeps its last known state; the next notification or
		// seed retries.
		s.logger.Error("failed to refresh mailbox view", "user_id", userID, "error", err)
		return
	}

	s.mu.Lock()
	view, ok := s.views[userID]
	if !ok {
		view = NewLive()
		view.Apply(documents)
		s.views[userID] = view
	}
	s.mu.Unlock()
	if ok {
		view.Apply(documents)
	}

	s.logger.Debug("mailbox view refreshed", "user_id", userID, "documents", len(documents))
}

// Tree returns the user's folder tree, optionally filtered by a search
// term before indexing.
func (s *Service) Tree(ctx context.Context, userID, search string) (*models.FolderNode, error) {
	view, err := s.viewFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return view.Tree(), nil
	}
	return BuildTree(FilterDocuments(view.Documents(), search)), nil
}

// Columns derives the browse columns for a slash-joined selected path.
func (s *Service) Columns(ctx context.Context, userID, path, search string) ([][]models.ColumnItem, error) {
	tree, err := s.Tree(ctx, userID, search)
	if err != nil {
		return nil, err
	}

	nav := NewNavigator()
	nav.SelectPath(path)
	return nav.Columns(tree), nil
}

// UpcomingEvent is one calendar event flattened out of a document's event
// block, with its start date parsed for ordering.
type UpcomingEvent struct {
	DocumentID  string    `json:"document_id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	Description string    `json:"description,omitempty"`
}

// UpcomingEvents flattens every document's events into one list of events
// starting on or after now, soonest first. Events whose start date does
// not parse are skipped.
func (s *Service) UpcomingEvents(ctx context.Context, userID string, now time.Time) ([]UpcomingEvent, error) {
	view, err := s.viewFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	upcoming := make([]UpcomingEvent, 0)
	for _, doc := range view.Documents() {
		for _, ev := range doc.Event.Events {
			start, err := parseEventDate(ev.StartDate)
			if err != nil {
				continue
			}
			if start.Before(today) {
				continue
			}
			upcoming = append(upcoming, UpcomingEvent{
				DocumentID:  doc.ID,
				Title:       ev.Title,
				StartDate:   start,
				Description: ev.Description,
			})
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	return upcoming, nil
}

// FilterDocuments keeps documents whose filename, folder path, summary, or
// tags contain the term, case-insensitively.
func FilterDocuments(documents []models.Document, term string) []models.Document {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return documents
	}

	matched := make([]models.Document, 0, len(documents))
	for _, doc := range documents {
		if matchesSearch(&doc, needle) {
			matched = append(matched, doc)
		}
	}
	return matched
}

func matchesSearch(doc *models.Document, needle string) bool {
	if strings.Contains(strings.ToLower(doc.Filename), needle) ||
		strings.Contains(strings.ToLower(doc.FolderPath), needle) ||
		strings.Contains(strings.ToLower(doc.Metadata.Summary), needle) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable event date %q", value)
}
