package analysis

import (
	"context"
	"fmt"
	"time"

	"papertrail/internal/domain/models"
	"papertrail/internal/genai"
)

const detectInstruction = `You are an assistant specialized in extracting ` +
	`calendar-related events from documents: appointments, payment deadlines, ` +
	`renewals, and scheduled dates of any kind. For each event extract a ` +
	`short title of at most five words naming the main subject and the event ` +
	`type (e.g. "BMW - Vehicle Reg. Expires"), the start date, an end date if ` +
	`a range is given, and a one-sentence description (include the amount due ` +
	`for bills). Use ISO 8601 for all dates. Only return what is clearly ` +
	`stated; never invent an event. Use exactly this JSON shape: {"events": ` +
	`[{"title": string, "start_date": string, "end_date": string, ` +
	`"description": string}]}, omitting end_date and description when absent. ` +
	`If no event is found, return {"events": []}.`

// detectorResponse is the structured output shape of the event detector.
type detectorResponse struct {
	Events []models.CalendarEvent `json:"events"`
}

// detectEvents asks for the raw candidate event list. Detection runs
// concurrently with synthesis, so descriptions are enriched from the
// summary at merge time rather than here. Year inference and past-date
// rollover are applied against the explicit reference instant, regardless
// of what the model returned.
func (s *Service) detectEvents(ctx context.Context, page models.Page, text string, now time.Time) ([]models.CalendarEvent, error) {
	req := &genai.Request{
		Model:       s.cfg.VisionModel,
		Instruction: detectInstruction,
	}
	if text != "" {
		req.Model = s.cfg.TextModel
		req.Text = text
	} else {
		req.Attachment = &page
	}
	var resp detectorResponse
	if err := s.client.GenerateObject(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("event detection: %w", err)
	}

	for i := range resp.Events {
		resp.Events[i].StartDate = NormalizeEventDate(resp.Events[i].StartDate, now)
		if resp.Events[i].EndDate != "" {
			resp.Events[i].EndDate = NormalizeEventDate(resp.Events[i].EndDate, now)
		}
	}

	return resp.Events, nil
}
