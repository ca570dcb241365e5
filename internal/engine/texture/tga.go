package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// ErrTGATruncated is returned when pixel data ends before the image is full.
var ErrTGATruncated = errors.New("TGA data truncated")

// tgaReader walks the pixel stream of a true-color TGA image.
type tgaReader struct {
	data          []byte
	pos           int
	bytesPerPixel int
}

// next reads one BGR(A) pixel.
func (r *tgaReader) next() (color.RGBA, bool) {
	if r.pos+r.bytesPerPixel > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos : r.pos+r.bytesPerPixel]
	r.pos += r.bytesPerPixel

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c, true
}

// DecodeTGA decodes a TGA image.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10)
// images at 24 or 32 bits per pixel, in either row order.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short: %d bytes", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	r := &tgaReader{data: data[offset:], bytesPerPixel: bpp / 8}

	// Bit 5 of the descriptor marks top-to-bottom rows.
	topToBottom := descriptor&0x20 != 0
	put := func(i int, c color.RGBA) {
		x, y := i%width, i/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = readTGARaw(r, width*height, put)
	} else {
		err = readTGARLE(r, width*height, put)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func readTGARaw(r *tgaReader, count int, put func(int, color.RGBA)) error {
	for i := 0; i < count; i++ {
		c, ok := r.next()
		if !ok {
			return ErrTGATruncated
		}
		put(i, c)
	}
	return nil
}

// readTGARLE expands run-length packets. The high bit of a packet header
// selects a repeated pixel; the low seven bits hold the run length minus one.
func readTGARLE(r *tgaReader, count int, put func(int, color.RGBA)) error {
	i := 0
	for i < count {
		if r.pos >= len(r.data) {
			return ErrTGATruncated
		}
		packet := r.data[r.pos]
		r.pos++
		n := min(int(packet&0x7F)+1, count-i)

		if packet&0x80 != 0 {
			c, ok := r.next()
			if !ok {
				return ErrTGATruncated
			}
			for ; n > 0; n-- {
				put(i, c)
				i++
			}
			continue
		}

		for ; n > 0; n-- {
			c, ok := r.next()
			if !ok {
				return ErrTGATruncated
			}
			put(i, c)
			i++
		}
	}
	return nil
}
