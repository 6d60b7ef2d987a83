package analysis

import (
	"strings"

	"papertrail/internal/domain/models"
)

// Placeholder sentinels some models emit instead of leaving a field empty.
// Compared case-insensitively against event titles and start dates.
var placeholderSentinels = map[string]struct{}{
	"no event found":      {},
	"no events found":     {},
	"no title found":      {},
	"no start date found": {},
	"no date found":       {},
	"none":                {},
	"n/a":                 {},
	"unknown":             {},
}

func isPlaceholder(value string) bool {
	_, ok := placeholderSentinels[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// ValidateEvents drops hallucinated and placeholder candidates: an event
// survives only with a non-empty, non-sentinel title and start date. A
// surviving event with no description falls back to the document summary.
func ValidateEvents(candidates []models.CalendarEvent, summary string) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0, len(candidates))
	for _, ev := range candidates {
		if strings.TrimSpace(ev.Title) == "" || strings.TrimSpace(ev.StartDate) == "" {
			continue
		}
		if isPlaceholder(ev.Title) || isPlaceholder(ev.StartDate) {
			continue
		}
		if ev.Description == "" {
			ev.Description = summary
		}
		events = append(events, ev)
	}
	return events
}

// merge combines the synthesized metadata with the validated events into
// the single result the save flow persists. Found mirrors whether any
// event survived validation.
func merge(synthesis *models.SynthesisResult, candidates []models.CalendarEvent, content models.Page, extractedText string) *models.AnalysisResult {
	events := ValidateEvents(candidates, synthesis.Summary)

	return &models.AnalysisResult{
		SynthesisResult: *synthesis,
		Content:         content,
		ExtractedText:   extractedText,
		Event: models.EventBlock{
			Found:  len(events) > 0,
			Events: events,
		},
	}
}
