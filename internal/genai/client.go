package genai

import (
	"context"

	"papertrail/internal/domain/models"
)

// Request is one generative-capability call: an instruction plus optional
// text and image content. The output shape is chosen by the method called,
// not by the request.
type Request struct {
	// Model identifies the model to use, e.g. "claude-haiku-4-5-20251001".
	Model string

	// Instruction is the task description given to the model.
	Instruction string

	// Text is optional text content to analyze.
	Text string

	// Attachment is optional binary content to analyze: a page image or a
	// non-image document such as a PDF.
	Attachment *models.Page
}

// Client is a generative-capability provider. Every method fails with an
// error wrapping domain.ErrModel when the model returns no usable output or
// is unreachable.
type Client interface {
	// Name returns the provider name.
	Name() string

	// GenerateText returns the model's free-text response.
	GenerateText(ctx context.Context, req *Request) (string, error)

	// GenerateObject asks for a structured response constrained to the
	// shape of out and unmarshals into it.
	GenerateObject(ctx context.Context, req *Request, out interface{}) error

	// GenerateImage returns an image produced by the model for the request.
	GenerateImage(ctx context.Context, req *Request) (*models.Page, error)
}
