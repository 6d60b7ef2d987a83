package analysis

import (
	"testing"

	"papertrail/internal/domain/models"
)

func TestValidateEvents(t *testing.T) {
	tests := []struct {
		name       string
		candidates []models.CalendarEvent
		summary    string
		want       int
	}{
		{
			name: "valid event survives",
			candidates: []models.CalendarEvent{
				{Title: "Dentist Appointment", StartDate: "2026-09-10"},
			},
			want: 1,
		},
		{
			name: "empty title dropped",
			candidates: []models.CalendarEvent{
				{Title: "", StartDate: "2026-09-10"},
			},
			want: 0,
		},
		{
			name: "empty start date dropped",
			candidates: []models.CalendarEvent{
				{Title: "Dentist Appointment", StartDate: "  "},
			},
			want: 0,
		},
		{
			name: "placeholder title dropped",
			candidates: []models.CalendarEvent{
				{Title: "No event found", StartDate: "2026-09-10"},
			},
			want: 0,
		},
		{
			name: "placeholder start date dropped",
			candidates: []models.CalendarEvent{
				{Title: "Dentist Appointment", StartDate: "N/A"},
			},
			want: 0,
		},
		{
			name: "mixed list keeps only valid",
			candidates: []models.CalendarEvent{
				{Title: "Dentist Appointment", StartDate: "2026-09-10"},
				{Title: "unknown", StartDate: "2026-09-11"},
				{Title: "Car Inspection", StartDate: "no date found"},
				{Title: "Parent Evening", StartDate: "2026-09-12"},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateEvents(tt.candidates, tt.summary)
			if len(got) != tt.want {
				t.Errorf("ValidateEvents() kept %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestValidateEventsDescriptionFallback(t *testing.T) {
	candidates := []models.CalendarEvent{
		{Title: "Dentist Appointment", StartDate: "2026-09-10"},
		{Title: "Car Inspection", StartDate: "2026-09-11", Description: "Bring the service booklet."},
	}

	got := ValidateEvents(candidates, "A reminder letter from the clinic.")

	if got[0].Description != "A reminder letter from the clinic." {
		t.Errorf("empty description should fall back to summary, got %q", got[0].Description)
	}
	if got[1].Description != "Bring the service booklet." {
		t.Errorf("existing description must not be overwritten, got %q", got[1].Description)
	}
}

func TestMergeEventBlock(t *testing.T) {
	synthesis := &models.SynthesisResult{
		Filename:   "Clinic Reminder.png",
		Summary:    "A reminder letter.",
		FolderPath: "Health",
		FolderTags: []string{"Health"},
	}
	content := models.Page{Data: []byte{1}, MediaType: "image/png"}

	withEvents := merge(synthesis, []models.CalendarEvent{
		{Title: "Checkup", StartDate: "2026-09-10"},
	}, content, "")
	if !withEvents.Event.Found {
		t.Error("Found should be true when an event survives")
	}

	allDropped := merge(synthesis, []models.CalendarEvent{
		{Title: "none", StartDate: "2026-09-10"},
	}, content, "")
	if allDropped.Event.Found {
		t.Error("Found should be false when every candidate is dropped")
	}
	if allDropped.Event.Events == nil || len(allDropped.Event.Events) != 0 {
		t.Errorf("Events should be an empty list, got %v", allDropped.Event.Events)
	}
}
