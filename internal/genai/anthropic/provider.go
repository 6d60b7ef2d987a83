package anthropic

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/disintegration/imaging"

	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
	"papertrail/internal/genai"
)

const defaultMaxTokens = 4096

// Provider implements the genai.Client interface for Anthropic (Claude)
// models.
//
// Claude models emit text, not images, so GenerateImage asks the model for
// the document's pixel bounds and performs the crop locally.
type Provider struct {
	client *anthropic.Client
}

// NewProvider creates a new Anthropic provider with the given API key.
func NewProvider(apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Provider{
		client: &client,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "anthropic"
}

// GenerateText generates a free-text response from Claude.
func (p *Provider) GenerateText(ctx context.Context, req *genai.Request) (string, error) {
	message, err := p.call(ctx, req)
	if err != nil {
		return "", err
	}

	text := collectText(message)
	if text == "" {
		return "", fmt.Errorf("%w: anthropic returned an empty response", domain.ErrModel)
	}

	return text, nil
}

// GenerateObject asks Claude for a JSON-only response and unmarshals it
// into out.
func (p *Provider) GenerateObject(ctx context.Context, req *genai.Request, out interface{}) error {
	jsonReq := *req
	jsonReq.Instruction = req.Instruction +
		"\n\nRespond with a single valid JSON object and nothing else. " +
		"Do not wrap the JSON in markdown fences or add any commentary."

	text, err := p.GenerateText(ctx, &jsonReq)
	if err != nil {
		return err
	}

	payload, err := extractJSON(text)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModel, err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: anthropic returned malformed JSON: %v", domain.ErrModel, err)
	}

	return nil
}

// documentBounds is the model's answer to the cropping question.
type documentBounds struct {
	Found  bool `json:"found"`
	Left   int  `json:"left"`
	Top    int  `json:"top"`
	Right  int  `json:"right"`
	Bottom int  `json:"bottom"`
}

// GenerateImage satisfies image-output requests with a text-output model:
// the model locates the document's exact boundary and the crop is applied
// here with the original pixels left untouched.
func (p *Provider) GenerateImage(ctx context.Context, req *genai.Request) (*models.Page, error) {
	if req.Attachment == nil {
		return nil, fmt.Errorf("%w: image generation requires an input image", domain.ErrModel)
	}

	src, err := imaging.Decode(bytes.NewReader(req.Attachment.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode input image: %v", domain.ErrModel, err)
	}
	bounds := src.Bounds()

	boundsReq := *req
	boundsReq.Instruction = fmt.Sprintf(
		"%s\n\nThe image is %d pixels wide and %d pixels tall. "+
			"Report the pixel bounding box of the document as JSON: "+
			`{"found": bool, "left": int, "top": int, "right": int, "bottom": int}. `+
			"If no document is visible, set found to false.",
		req.Instruction, bounds.Dx(), bounds.Dy(),
	)

	var box documentBounds
	if err := p.GenerateObject(ctx, &boundsReq, &box); err != nil {
		return nil, err
	}
	if !box.Found {
		return nil, fmt.Errorf("%w: no document located in image", domain.ErrModel)
	}

	rect := image.Rect(box.Left, box.Top, box.Right, box.Bottom).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("%w: model returned a degenerate bounding box", domain.ErrModel)
	}

	cropped := imaging.Crop(src, rect)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &models.Page{
		Data:      buf.Bytes(),
		MediaType: "image/png",
	}, nil
}

// call builds the message request and invokes the Anthropic API.
func (p *Provider) call(ctx context.Context, req *genai.Request) (*anthropic.Message, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, 3)
	blocks = append(blocks, anthropic.NewTextBlock(req.Instruction))

	if req.Attachment != nil {
		encoded := base64.StdEncoding.EncodeToString(req.Attachment.Data)
		if strings.HasPrefix(req.Attachment.MediaType, "image/") {
			blocks = append(blocks, anthropic.NewImageBlockBase64(req.Attachment.MediaType, encoded))
		} else {
			blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
				Data: encoded,
			}))
		}
	}
	if req.Text != "" {
		blocks = append(blocks, anthropic.NewTextBlock(req.Text))
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic API call failed: %v", domain.ErrModel, err)
	}

	return message, nil
}

// collectText concatenates every text block of the response.
func collectText(message *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range message.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(variant.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// extractJSON pulls the outermost JSON object out of a model response,
// tolerating markdown fences the instruction forbade but models still emit.
func extractJSON(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("response contains no JSON object")
	}
	return json.RawMessage(text[start : end+1]), nil
}
