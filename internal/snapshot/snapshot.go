// Package snapshot encodes rendered frames to image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrFormat is returned for an unknown output format.
var ErrFormat = errors.New("snapshot: unknown format")

// Format names an output encoding.
type Format string

const (
	WebP Format = "webp" // lossless
	TGA  Format = "tga"
)

// ParseFormat accepts a format name or file extension, with or without the
// leading dot. Empty means WebP.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	}
	return "", fmt.Errorf("%w %q", ErrFormat, s)
}

// Ext is the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("snapshot: webp encode: %w", err)
		}
	case TGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("snapshot: tga encode: %w", err)
		}
	default:
		return fmt.Errorf("%w %q", ErrFormat, string(f))
	}
	return nil
}

// Write encodes img to path, creating parent directories. The format is
// taken from the path's extension.
func Write(path string, img image.Image) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
