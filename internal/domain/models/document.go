package models

import (
	"strings"
	"time"
)

// UncategorizedFolder is the canonical folder for documents whose analysis
// produced no folder placement.
const UncategorizedFolder = "Uncategorized"

// Document is the persisted result of one analysis: the stored bytes plus
// everything needed to file and browse it.
type Document struct {
	ID          string        `json:"id" db:"id"`
	UserID      string        `json:"user_id" db:"user_id"`
	Filename    string        `json:"filename" db:"filename"`
	FolderPath  string        `json:"folder_path" db:"folder_path"`
	Tags        []string      `json:"tags" db:"tags"`
	StorageKey  string        `json:"storage_key" db:"storage_key"`
	DownloadURL string        `json:"download_url" db:"download_url"`
	Metadata    DocumentMeta  `json:"metadata" db:"metadata"`
	Event       EventBlock    `json:"event" db:"event"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// DocumentMeta holds the metadata block extracted during synthesis.
// All fields are model-derived and optional.
type DocumentMeta struct {
	Sender   string `json:"sender,omitempty"`
	Date     string `json:"date,omitempty"`
	Category string `json:"category,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// EventBlock carries the calendar events detected in a document.
// Found is true iff Events is non-empty.
type EventBlock struct {
	Found  bool            `json:"found"`
	Events []CalendarEvent `json:"events"`
}

// CalendarEvent is a single detected calendar-style event. StartDate and
// EndDate are ISO-8601 date-times.
type CalendarEvent struct {
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// PathSegments returns the document's folder path split into trimmed
// segments. An empty or blank path normalizes to ["Uncategorized"], so the
// result is never empty and is the canonical address of the document in the
// folder tree.
func (d *Document) PathSegments() []string {
	return SplitFolderPath(d.FolderPath)
}

// SplitFolderPath splits a slash-delimited folder path into trimmed,
// non-empty segments, normalizing a blank path to the Uncategorized folder.
func SplitFolderPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return []string{UncategorizedFolder}
	}
	return segments
}
