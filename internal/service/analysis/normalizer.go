package analysis

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"

	"papertrail/internal/config"
	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
)

// NormalizedInput is the single canonical input fed downstream: one image
// (possibly a stitched composite) or the original non-image bytes.
type NormalizedInput struct {
	Kind models.InputKind
	Page models.Page
}

// NormalizeInput classifies the uploaded pages and reduces them to exactly
// one canonical input. Mixed kinds, or more than one file for a non-image
// upload, are rejected before any model call.
func NormalizeInput(kind models.InputKind, pages []models.Page) (*NormalizedInput, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no files supplied", domain.ErrValidation)
	}
	if len(pages) > config.MaxPagesPerDocument {
		return nil, fmt.Errorf("%w: at most %d pages per document", domain.ErrValidation, config.MaxPagesPerDocument)
	}

	switch kind {
	case models.InputKindImage:
		for i, page := range pages {
			if !isImageMediaType(page.MediaType) {
				return nil, fmt.Errorf("%w: page %d is %s, expected an image", domain.ErrValidation, i+1, page.MediaType)
			}
		}
		if len(pages) == 1 {
			return &NormalizedInput{Kind: kind, Page: pages[0]}, nil
		}
		composite, err := stitchPages(pages)
		if err != nil {
			return nil, err
		}
		return &NormalizedInput{Kind: kind, Page: *composite}, nil

	case models.InputKindOther:
		if len(pages) != 1 {
			return nil, fmt.Errorf("%w: a non-image document must be a single file", domain.ErrValidation)
		}
		if isImageMediaType(pages[0].MediaType) {
			return nil, fmt.Errorf("%w: got an image for a non-image upload", domain.ErrValidation)
		}
		return &NormalizedInput{Kind: kind, Page: pages[0]}, nil

	default:
		return nil, fmt.Errorf("%w: unknown input kind %q", domain.ErrValidation, kind)
	}
}

// stitchPages concatenates page images vertically in input order. The
// composite is as wide as the widest page and as tall as all pages stacked.
func stitchPages(pages []models.Page) (*models.Page, error) {
	images := make([]image.Image, 0, len(pages))
	for i, page := range pages {
		img, err := imaging.Decode(bytes.NewReader(page.Data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode page %d: %v", domain.ErrValidation, i+1, err)
		}
		images = append(images, img)
	}

	composite := Stitch(images)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, composite, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode composite: %w", err)
	}

	return &models.Page{
		Data:      buf.Bytes(),
		MediaType: "image/png",
	}, nil
}

// Stitch draws the images top to bottom at x=0, each below the previous.
// Composite width is the max input width, height the sum of input heights.
func Stitch(images []image.Image) *image.NRGBA {
	width, height := 0, 0
	for _, img := range images {
		if w := img.Bounds().Dx(); w > width {
			width = w
		}
		height += img.Bounds().Dy()
	}

	composite := image.NewNRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, img := range images {
		b := img.Bounds()
		target := image.Rect(0, y, b.Dx(), y+b.Dy())
		draw.Draw(composite, target, img, b.Min, draw.Src)
		y += b.Dy()
	}

	return composite
}

func isImageMediaType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}
