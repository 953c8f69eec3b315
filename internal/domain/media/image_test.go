package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestValidateImageURLAcceptsPNGDataURL(t *testing.T) {
	info, err := ValidateImageURL(pngDataURL(t, 4, 3), 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Inline || info.Format != "png" || info.Width != 4 || info.Height != 3 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: ""},
		{name: "https", raw: "https://picsum.photos/seed/abc/800/600"},
		{name: "ftp", raw: "ftp://example.com/a.png", wantErr: ErrUnsupportedImage},
		{name: "relative", raw: "/static/a.png", wantErr: ErrUnsupportedImage},
		{name: "text data", raw: "data:text/plain;base64,aGVsbG8=", wantErr: ErrUnsupportedImage},
		{name: "not base64", raw: "data:image/png,raw", wantErr: ErrUnsupportedImage},
		{name: "garbage image", raw: "data:image/png;base64,aGVsbG8=", wantErr: ErrUnsupportedImage},
		{name: "no comma", raw: "data:image/png;base64", wantErr: ErrUnsupportedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateImageURL(tt.raw, 1<<20)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateImageURLRejectsOversizedPayload(t *testing.T) {
	_, err := ValidateImageURL(pngDataURL(t, 64, 64), 16)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}
