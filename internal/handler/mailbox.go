package handler

import (
	"log/slog"
	"net/http"
	"time"

	"papertrail/internal/httputil"
	"papertrail/internal/service/mailbox"
)

// MailboxHandler handles folder tree and column browsing requests
type MailboxHandler struct {
	service *mailbox.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewMailboxHandler creates a new mailbox handler
func NewMailboxHandler(service *mailbox.Service, logger *slog.Logger) *MailboxHandler {
	return &MailboxHandler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// GetTree returns the caller's folder tree, optionally filtered
// GET /api/mailbox/tree?search=term
func (h *MailboxHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	search := r.URL.Query().Get("search")

	tree, err := h.service.Tree(r.Context(), userID, search)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// GetColumns returns the browse columns for a selected path
// GET /api/mailbox/columns?path=Bills/2025&search=term
func (h *MailboxHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	query := r.URL.Query()

	columns, err := h.service.Columns(r.Context(), userID, query.Get("path"), query.Get("search"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, columns)
}

// GetUpcomingEvents returns detected events starting today or later
// GET /api/events/upcoming
func (h *MailboxHandler) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	events, err := h.service.UpcomingEvents(r.Context(), userID, h.now())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, events)
}
