package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image")
	ErrImageTooLarge    = errors.New("image too large")
)

// ImageInfo describes an accepted image reference.
type ImageInfo struct {
	Inline bool   `json:"inline"`
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ValidateImageURL accepts an empty value, an http(s) URL, or a base64
// data URL holding a png, jpeg, gif or webp image of at most maxBytes.
func ValidateImageURL(raw string, maxBytes int) (ImageInfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ImageInfo{}, nil
	}

	if strings.HasPrefix(raw, "data:") {
		return validateDataURL(raw, maxBytes)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ImageInfo{}, fmt.Errorf("%w: not an http(s) or data url", ErrUnsupportedImage)
	}
	return ImageInfo{}, nil
}

func validateDataURL(raw string, maxBytes int) (ImageInfo, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok {
		return ImageInfo{}, fmt.Errorf("%w: malformed data url", ErrUnsupportedImage)
	}

	mime, params, _ := strings.Cut(header, ";")
	if !strings.HasPrefix(strings.ToLower(mime), "image/") {
		return ImageInfo{}, fmt.Errorf("%w: mime type %q", ErrUnsupportedImage, mime)
	}
	if !strings.Contains(params, "base64") {
		return ImageInfo{}, fmt.Errorf("%w: data url is not base64", ErrUnsupportedImage)
	}

	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return ImageInfo{}, ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return ImageInfo{}, ErrImageTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	return ImageInfo{Inline: true, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
