package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize    = 300
	DefaultPadding = 10

	minSize = 50
	maxSize = 2000
)

var ErrInvalidOptions = errors.New("invalid render options")

type Options struct {
	Size       int
	Padding    int
	Foreground color.Color
	Background color.Color
}

func DefaultOptions() Options {
	return Options{
		Size:       DefaultSize,
		Padding:    DefaultPadding,
		Foreground: color.Black,
		Background: color.White,
	}
}

func (o Options) Validate() error {
	if o.Size < minSize || o.Size > maxSize {
		return fmt.Errorf("%w: size must be between %d and %d", ErrInvalidOptions, minSize, maxSize)
	}
	if o.Padding < 0 || o.Padding*4 > o.Size {
		return fmt.Errorf("%w: padding must be between 0 and a quarter of size", ErrInvalidOptions)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Foreground == nil {
		o.Foreground = color.Black
	}
	if o.Background == nil {
		o.Background = color.White
	}
	return o
}

// QRRenderer turns arbitrary text into a QR code image.
type QRRenderer struct {
	level qrcode.RecoveryLevel
}

func NewQRRenderer() *QRRenderer {
	return &QRRenderer{level: qrcode.Medium}
}

func (r *QRRenderer) Image(text string, opts Options) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	code, err := qrcode.New(text, r.level)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	code.ForegroundColor = opts.Foreground
	code.BackgroundColor = opts.Background

	symbol := code.Image(opts.Size - 2*opts.Padding)
	inner := symbol.Bounds().Dx()
	total := inner + 2*opts.Padding
	if total < opts.Size {
		total = opts.Size
	}
	offset := (total - inner) / 2

	canvas := image.NewRGBA(image.Rect(0, 0, total, total))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(offset, offset, offset+inner, offset+inner), symbol, symbol.Bounds().Min, draw.Src)

	return canvas, nil
}

func (r *QRRenderer) PNG(text string, opts Options) ([]byte, error) {
	img, err := r.Image(text, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *QRRenderer) DataURI(text string, opts Options) (string, error) {
	data, err := r.PNG(text, opts)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (r *QRRenderer) HTMLTag(text string, opts Options) (string, error) {
	uri, err := r.DataURI(text, opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<img src="%s" alt="QR Platba">`, html.EscapeString(uri)), nil
}
