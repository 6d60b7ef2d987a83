package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"papertrail/internal/config"
	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
	"papertrail/internal/genai"
)

const synthesizeInstruction = `You are an assistant that analyzes documents ` +
	`and generates smart, human-readable filenames and metadata. Based on the ` +
	`document's content, generate: a descriptive filename (e.g. "Bank ` +
	`Statement - Chase - June 2024"); a concise one-to-two-sentence summary; ` +
	`a list of folder tags for organization (e.g. ["Finance", "Banking"]); a ` +
	`hierarchical folder path based on the tags (e.g. "Finance/Banking"); and ` +
	`any available metadata. For the sender, extract only the name and email ` +
	`address, never the surrounding text. Use exactly this JSON shape: ` +
	`{"filename": string, "summary": string, "folderPath": string, ` +
	`"folderTags": [string], "metadata": {"sender": string, "date": string, ` +
	`"category": string, "summary": string}}. Omit metadata fields you ` +
	`cannot determine.`

// synthesize produces the structured metadata record for the rectified
// image or extracted text. The fallback defaults are enforced here, not
// trusted to the model: empty tags become ["Uncategorized"], and an empty
// folder path is derived from the tags.
func (s *Service) synthesize(ctx context.Context, page models.Page, text string) (*models.SynthesisResult, error) {
	req := &genai.Request{
		Model:       s.cfg.VisionModel,
		Instruction: synthesizeInstruction,
	}
	if text != "" {
		req.Model = s.cfg.TextModel
		req.Text = text
	} else {
		req.Attachment = &page
	}

	var result models.SynthesisResult
	if err := s.client.GenerateObject(ctx, req, &result); err != nil {
		return nil, fmt.Errorf("metadata synthesis: %w", err)
	}

	if result.Filename == "" {
		return nil, fmt.Errorf("%w: synthesis returned no filename", domain.ErrValidation)
	}

	if len(result.FolderTags) == 0 {
		result.FolderTags = []string{models.UncategorizedFolder}
	}
	if result.FolderPath == "" {
		result.FolderPath = strings.Join(result.FolderTags, " / ")
	}

	// Text input means a non-image original; keep the filename convention.
	if text != "" && !strings.HasSuffix(strings.ToLower(result.Filename), ".pdf") {
		result.Filename += ".pdf"
	}

	// Model output is clamped, not trusted, against the service limits.
	if len(result.Filename) > config.MaxFilenameLength {
		cut := config.MaxFilenameLength
		// Back up to a rune boundary so the clamp never splits a
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(result.Filename[cut]) {
			cut--
		}
		result.Filename = result.Filename[:cut]
	}
	if segments := models.SplitFolderPath(result.FolderPath); len(segments) > config.MaxFolderDepth {
		result.FolderPath = strings.Join(segments[:config.MaxFolderDepth], "/")
	}

	return &result, nil
}
