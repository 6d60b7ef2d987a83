package models

// InputKind declares what the user uploaded.
type InputKind string

const (
	// InputKindImage is one or more photographed page images.
	InputKindImage InputKind = "image"
	// InputKindOther is exactly one non-image document, e.g. a PDF.
	InputKindOther InputKind = "other"
)

// Page is one uploaded file: raw bytes plus the declared media type.
type Page struct {
	Data      []byte
	MediaType string
}

// SynthesisResult is the structured output of the metadata synthesizer.
type SynthesisResult struct {
	Filename   string       `json:"filename"`
	Summary    string       `json:"summary"`
	FolderPath string       `json:"folderPath"`
	FolderTags []string     `json:"folderTags"`
	Metadata   DocumentMeta `json:"metadata"`
}

// AnalysisResult is the merged, validated output of one pipeline run: the
// synthesized metadata plus the canonical content the user will save.
type AnalysisResult struct {
	SynthesisResult

	// Content is the rectified image, or the original bytes for non-image
	// input. This is what the save flow uploads.
	Content Page `json:"-"`

	// ExtractedText is the transcription for non-image input, empty for
	// image input.
	ExtractedText string `json:"extracted_text,omitempty"`

	// Event holds the validated calendar events. Found is false when event
	// detection was skipped or returned nothing usable.
	Event EventBlock `json:"event"`
}
