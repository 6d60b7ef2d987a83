package analysis

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"papertrail/internal/domain"
	"papertrail/internal/domain/models"
)

func encodePNG(t *testing.T, width, height int, fill color.NRGBA) []byte {
	t.Helper()
	img := imaging.New(width, height, fill)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeInputValidation(t *testing.T) {
	imagePage := models.Page{Data: encodePNG(t, 10, 10, color.NRGBA{R: 255, A: 255}), MediaType: "image/png"}
	pdfPage := models.Page{Data: []byte("%PDF-1.4"), MediaType: "application/pdf"}

	tests := []struct {
		name  string
		kind  models.InputKind
		pages []models.Page
	}{
		{
			name:  "no files",
			kind:  models.InputKindImage,
			pages: nil,
		},
		{
			name:  "pdf declared as image",
			kind:  models.InputKindImage,
			pages: []models.Page{pdfPage},
		},
		{
			name:  "image declared as other",
			kind:  models.InputKindOther,
			pages: []models.Page{imagePage},
		},
		{
			name:  "multiple files for other",
			kind:  models.InputKindOther,
			pages: []models.Page{pdfPage, pdfPage},
		},
		{
			name:  "unknown kind",
			kind:  models.InputKind("video"),
			pages: []models.Page{imagePage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeInput(tt.kind, tt.pages)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("NormalizeInput() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestNormalizeInputSinglePagePassthrough(t *testing.T) {
	page := models.Page{Data: encodePNG(t, 10, 10, color.NRGBA{A: 255}), MediaType: "image/png"}

	got, err := NormalizeInput(models.InputKindImage, []models.Page{page})
	if err != nil {
		t.Fatalf("NormalizeInput() error = %v", err)
	}
	if !bytes.Equal(got.Page.Data, page.Data) {
		t.Error("single image page should pass through unchanged")
	}
}

func TestNormalizeInputStitchesMultiplePages(t *testing.T) {
	pages := []models.Page{
		{Data: encodePNG(t, 300, 100, color.NRGBA{R: 255, A: 255}), MediaType: "image/png"},
		{Data: encodePNG(t, 500, 200, color.NRGBA{G: 255, A: 255}), MediaType: "image/png"},
		{Data: encodePNG(t, 300, 150, color.NRGBA{B: 255, A: 255}), MediaType: "image/png"},
	}

	got, err := NormalizeInput(models.InputKindImage, pages)
	if err != nil {
		t.Fatalf("NormalizeInput() error = %v", err)
	}
	if got.Page.MediaType != "image/png" {
		t.Errorf("composite media type = %s, want image/png", got.Page.MediaType)
	}

	composite, err := imaging.Decode(bytes.NewReader(got.Page.Data))
	if err != nil {
		t.Fatalf("decode composite: %v", err)
	}
	if w := composite.Bounds().Dx(); w != 500 {
		t.Errorf("composite width = %d, want 500", w)
	}
	if h := composite.Bounds().Dy(); h != 450 {
		t.Errorf("composite height = %d, want 450", h)
	}
}

func TestStitchGeometry(t *testing.T) {
	images := []image.Image{
		imaging.New(300, 100, color.NRGBA{R: 255, A: 255}),
		imaging.New(500, 200, color.NRGBA{G: 255, A: 255}),
		imaging.New(300, 150, color.NRGBA{B: 255, A: 255}),
	}

	composite := Stitch(images)

	if got := composite.Bounds().Dx(); got != 500 {
		t.Errorf("width = %d, want 500", got)
	}
	if got := composite.Bounds().Dy(); got != 450 {
		t.Errorf("height = %d, want 450", got)
	}

	// Each page starts directly below the previous, at x=0.
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{R: 255, A: 255}},
		{0, 100, color.NRGBA{G: 255, A: 255}},
		{0, 300, color.NRGBA{B: 255, A: 255}},
	}
	for _, c := range checks {
		if got := composite.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel at (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}

	// The area right of a narrow page stays transparent.
	if got := composite.NRGBAAt(400, 0); got != (color.NRGBA{}) {
		t.Errorf("pixel at (400,0) = %v, want transparent", got)
	}
}
