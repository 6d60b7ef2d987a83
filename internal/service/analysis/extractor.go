package analysis

import (
	"context"

	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
	"papertrail/internal/genai"
)

const extractInstruction = `Extract all readable information from the ` +
	`following document: plain text, dates in any format, headings, tables, ` +
	`labels, key-value pairs, numbers, and lists. Return cleanly formatted ` +
	`text, preserving the original structure as much as possible.`

// extract transcribes a non-image document into plain text. Empty output is
// terminal for the whole analysis.
func (s *Service) extract(ctx context.Context, page models.Page) (string, error) {
	text, err := s.client.GenerateText(ctx, &genai.Request{
		Model:       s.cfg.VisionModel,
		Instruction: extractInstruction,
		Attachment:  &page,
	})
	if err != nil {
		return "", &domain.ExtractFailedError{Reason: err.Error()}
	}
	if text == "" {
		return "", &domain.ExtractFailedError{Reason: "capability returned no text"}
	}
	return text, nil
}
