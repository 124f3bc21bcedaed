package media

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"

	// Registered decoders for Probe.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/zeebo/blake3"
)

// ImageInfo describes a decoded image header.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// Probe reads the dimensions of an image without decoding its pixels.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognized. Vector formats such
// as EMF and WMF return an error.
func Probe(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("probe image: %w", err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Digest returns the hex-encoded BLAKE3-256 hash of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
