package analysis

import (
	"context"

	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
	"papertrail/internal/genai"
)

const rectifyInstruction = `You are a document scanner. Identify the main ` +
	`document in the image, apply a perspective correction so it reads as a ` +
	`flat top-down scan, and crop to its exact boundary. Do not alter the ` +
	`document's content and do not add padding or background.`

// rectify asks the vision capability for a flat, cropped scan of the
// photographed document. A missing result is terminal for the whole
// analysis; the uncropped input is never silently substituted.
func (s *Service) rectify(ctx context.Context, page models.Page) (*models.Page, error) {
	rectified, err := s.client.GenerateImage(ctx, &genai.Request{
		Model:       s.cfg.VisionModel,
		Instruction: rectifyInstruction,
		Attachment:  &page,
	})
	if err != nil {
		return nil, &domain.RectifyFailedError{Reason: err.Error()}
	}
	if rectified == nil || len(rectified.Data) == 0 {
		return nil, &domain.RectifyFailedError{Reason: "capability returned no image"}
	}
	return rectified, nil
}
