package render

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"
)

const sample = "SPD*1.0*ACC:CZ6508000000192000145399*AM:450.00*CC:CZK"

func TestPNGHasRequestedSize(t *testing.T) {
	r := NewQRRenderer()
	data, err := r.PNG(sample, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png decode failed: %v", err)
	}
	if img.Bounds().Dx() < DefaultSize || img.Bounds().Dx() != img.Bounds().Dy() {
		t.Fatalf("unexpected image bounds: %v", img.Bounds())
	}
}

func TestPaddingIsBackground(t *testing.T) {
	r := NewQRRenderer()
	img, err := r.Image(sample, Options{Size: 200, Padding: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	red, green, blue, _ := img.At(5, 5).RGBA()
	if red != 0xffff || green != 0xffff || blue != 0xffff {
		t.Fatalf("expected white padding, got %d/%d/%d", red, green, blue)
	}
}

func TestDataURIAndHTMLTag(t *testing.T) {
	r := NewQRRenderer()
	uri, err := r.DataURI(sample, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected data uri prefix: %.40s", uri)
	}

	tag, err := r.HTMLTag(sample, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(tag, `<img src="data:image/png;base64,`) || !strings.HasSuffix(tag, `" alt="QR Platba">`) {
		t.Fatalf("unexpected html tag: %.60s", tag)
	}
}

func TestOptionsValidate(t *testing.T) {
	bad := []Options{
		{Size: 10, Padding: 0},
		{Size: 5000, Padding: 0},
		{Size: 300, Padding: -1},
		{Size: 300, Padding: 100},
	}
	for _, opts := range bad {
		if err := opts.Validate(); !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("expected ErrInvalidOptions for %+v, got %v", opts, err)
		}
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options should be valid: %v", err)
	}
}
