package handler

import (
	"encoding/base64"
	"fmt"

	"papertrail/internal/domain/models"
)

// AnalyzeResponse is the analysis result plus the canonical content bytes,
// base64-encoded so the client can hand them back to the save endpoint
// unchanged.
type AnalyzeResponse struct {
	models.AnalysisResult

	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

func newAnalyzeResponse(result *models.AnalysisResult) *AnalyzeResponse {
	return &AnalyzeResponse{
		AnalysisResult: *result,
		Content:        base64.StdEncoding.EncodeToString(result.Content.Data),
		ContentType:    result.Content.MediaType,
	}
}

// SaveDocumentRequest carries an accepted analysis result back for
// persistence.
type SaveDocumentRequest struct {
	Filename    string              `json:"filename"`
	Summary     string              `json:"summary"`
	FolderPath  string              `json:"folder_path"`
	FolderTags  []string            `json:"folder_tags"`
	Metadata    models.DocumentMeta `json:"metadata"`
	Event       models.EventBlock   `json:"event"`
	Content     string              `json:"content"`
	ContentType string              `json:"content_type"`
}

// toResult decodes the request into the analysis result shape the document
// service persists.
func (r *SaveDocumentRequest) toResult() (*models.AnalysisResult, error) {
	data, err := base64.StdEncoding.DecodeString(r.Content)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	return &models.AnalysisResult{
		SynthesisResult: models.SynthesisResult{
			Filename:   r.Filename,
			Summary:    r.Summary,
			FolderPath: r.FolderPath,
			FolderTags: r.FolderTags,
			Metadata:   r.Metadata,
		},
		Content: models.Page{Data: data, MediaType: r.ContentType},
		Event:   r.Event,
	}, nil
}
