package scripted

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
	"papertrail/internal/genai"
)

// defaultObject satisfies both the synthesizer and detector output shapes;
// unknown fields are ignored on unmarshal.
const defaultObject = `{
	"filename": "Scanned Document",
	"summary": "A scanned document.",
	"folderPath": "Uncategorized",
	"folderTags": ["Uncategorized"],
	"metadata": {},
	"events": []
}`

// Provider is a scripted capability for development and tests: responses are
// served from queues, falling back to a deterministic canned answer when a
// queue is empty. No network, no API keys.
type Provider struct {
	mu      sync.Mutex
	texts   []string
	objects []interface{}
	images  []*models.Page
	errs    []error
}

// NewProvider creates an empty scripted provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "scripted"
}

// QueueText enqueues the next GenerateText response.
func (p *Provider) QueueText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.texts = append(p.texts, text)
}

// QueueObject enqueues the next GenerateObject response. The value is
// marshaled to JSON and unmarshaled into the caller's output shape.
func (p *Provider) QueueObject(v interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects = append(p.objects, v)
}

// QueueImage enqueues the next GenerateImage response.
func (p *Provider) QueueImage(page *models.Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.images = append(p.images, page)
}

// QueueError makes the next call of any kind fail with err.
func (p *Provider) QueueError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, err)
}

func (p *Provider) nextError() error {
	if len(p.errs) == 0 {
		return nil
	}
	err := p.errs[0]
	p.errs = p.errs[1:]
	return err
}

// GenerateText pops the next scripted text, or returns a canned
// transcription when nothing is queued.
func (p *Provider) GenerateText(ctx context.Context, req *genai.Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.nextError(); err != nil {
		return "", err
	}
	if len(p.texts) > 0 {
		text := p.texts[0]
		p.texts = p.texts[1:]
		return text, nil
	}
	return "Scanned document text.", nil
}

// GenerateObject pops the next scripted object and round-trips it through
// JSON into out, or serves the canned default.
func (p *Provider) GenerateObject(ctx context.Context, req *genai.Request, out interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.nextError(); err != nil {
		return err
	}

	payload := []byte(defaultObject)
	if len(p.objects) > 0 {
		v := p.objects[0]
		p.objects = p.objects[1:]

		var err error
		payload, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("scripted object is not marshalable: %w", err)
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: scripted response does not match output shape: %v", domain.ErrModel, err)
	}
	return nil
}

// GenerateImage pops the next scripted image, or echoes the request image
// back as the "rectified" result.
func (p *Provider) GenerateImage(ctx context.Context, req *genai.Request) (*models.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.nextError(); err != nil {
		return nil, err
	}
	if len(p.images) > 0 {
		page := p.images[0]
		p.images = p.images[1:]
		return page, nil
	}
	if req.Attachment != nil {
		return req.Attachment, nil
	}
	return nil, fmt.Errorf("%w: scripted provider has no image to return", domain.ErrModel)
}
