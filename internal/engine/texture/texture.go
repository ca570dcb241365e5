// Package texture decodes material texture images into RGBA pixel buffers.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/objview/pkg/formats"
)

// Decoder reads texture files for a formats.MaterialLibrary.
type Decoder struct {
	// MaxSize caps both image dimensions. Larger images are downscaled,
	// keeping their aspect ratio. Zero disables the cap.
	MaxSize int
}

var _ formats.ImageDecoder = (*Decoder)(nil)

// Decode reads and decodes the image at path. TGA files go through
// DecodeTGA; other formats are detected from their content.
func (d *Decoder) Decode(path string) (*formats.TextureMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, err := DecodeImage(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	if d.MaxSize > 0 {
		img = Downscale(img, d.MaxSize)
	}

	rgba := ImageToRGBA(img)
	return &formats.TextureMap{
		Path:   path,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// DecodeImage decodes image data. ext selects the TGA decoder, which cannot
// be detected from content.
func DecodeImage(data []byte, ext string) (image.Image, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// Downscale shrinks img so that neither side exceeds maxSize. Smaller
// images are returned unchanged.
func Downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img
	}
	return resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Lanczos3)
}

// ImageToRGBA converts any image.Image to a tightly packed *image.RGBA with
// its origin at (0, 0).
func ImageToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}
