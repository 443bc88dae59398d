// Package render turns canonical payload strings into QR images by calling an
// external render service. The codec engine never depends on this package.
package render

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"qr-engine/internal/common/errors"
)

// Renderer produces image bytes for a canonical payload string.
type Renderer interface {
	Render(ctx context.Context, payload string, opts StyleOptions) ([]byte, error)
}

const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

const (
	DefaultSize            = 512
	DefaultMargin          = 4
	DefaultErrorCorrection = "M"
	DefaultForeground      = "#000000"
	DefaultBackground      = "#FFFFFF"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// StyleOptions controls the rendered image. Zero values mean "use the default".
type StyleOptions struct {
	Size            int    `json:"size,omitempty"`
	Margin          *int   `json:"margin,omitempty"`
	ErrorCorrection string `json:"errorCorrection,omitempty"`
	Foreground      string `json:"foreground,omitempty"`
	Background      string `json:"background,omitempty"`
	Format          string `json:"format,omitempty"`
}

// Normalize fills defaults and validates every option. Errors carry the
// "style." prefixed field name.
func (o StyleOptions) Normalize() (StyleOptions, error) {
	out := o

	if out.Size == 0 {
		out.Size = DefaultSize
	}
	if out.Size < 128 || out.Size > 2048 {
		return StyleOptions{}, errors.NewOutOfRangeError("style.size", "size must be between 128 and 2048 pixels")
	}

	margin := DefaultMargin
	if out.Margin != nil {
		margin = *out.Margin
	}
	if margin < 0 || margin > 16 {
		return StyleOptions{}, errors.NewOutOfRangeError("style.margin", "margin must be between 0 and 16 modules")
	}
	out.Margin = &margin

	out.ErrorCorrection = strings.ToUpper(strings.TrimSpace(out.ErrorCorrection))
	if out.ErrorCorrection == "" {
		out.ErrorCorrection = DefaultErrorCorrection
	}
	switch out.ErrorCorrection {
	case "L", "M", "Q", "H":
	default:
		return StyleOptions{}, errors.NewUnsupportedOptionError("style.errorCorrection",
			fmt.Sprintf("error correction %q is not supported; use L, M, Q or H", o.ErrorCorrection))
	}

	var err error
	if out.Foreground, err = normalizeColor("style.foreground", out.Foreground, DefaultForeground); err != nil {
		return StyleOptions{}, err
	}
	if out.Background, err = normalizeColor("style.background", out.Background, DefaultBackground); err != nil {
		return StyleOptions{}, err
	}
	if out.Foreground == out.Background {
		return StyleOptions{}, errors.NewBadFormatError("style.foreground", "foreground and background must differ")
	}

	out.Format = strings.ToLower(strings.TrimSpace(out.Format))
	if out.Format == "" {
		out.Format = FormatPNG
	}
	if out.Format != FormatPNG && out.Format != FormatSVG {
		return StyleOptions{}, errors.NewUnsupportedOptionError("style.format",
			fmt.Sprintf("format %q is not supported; use png or svg", o.Format))
	}

	return out, nil
}

func normalizeColor(field, v, def string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	if !hexColor.MatchString(v) {
		return "", errors.NewBadFormatError(field, "color must be #RRGGBB")
	}
	return strings.ToUpper(v), nil
}

// ContentType is the MIME type of images rendered with these options.
func (o StyleOptions) ContentType() string {
	if o.Format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// key is a stable serialization of normalized options for cache keys.
func (o StyleOptions) key() string {
	margin := DefaultMargin
	if o.Margin != nil {
		margin = *o.Margin
	}
	return fmt.Sprintf("%d|%d|%s|%s|%s|%s", o.Size, margin, o.ErrorCorrection, o.Foreground, o.Background, o.Format)
}
