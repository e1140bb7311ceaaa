package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a true-color TGA image, uncompressed or RLE, 24 or 32 bits.
// 24-bit files decode as opaque and count as 3 channels.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
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
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has zero size")
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	r := &tgaReader{
		img:           image.NewNRGBA(image.Rect(0, 0, width, height)),
		data:          data[offset:],
		width:         width,
		height:        height,
		bytesPerPixel: bpp / 8,
		// bit 5 of the descriptor: rows stored top to bottom
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(r.data) < width*height*r.bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < width*height; i++ {
			r.put(i, r.pixel())
		}
		return r.img, nil
	}

	if err := r.decodeRLE(); err != nil {
		return nil, err
	}
	return r.img, nil
}

type tgaReader struct {
	img           *image.NRGBA
	data          []byte
	pos           int
	width         int
	height        int
	bytesPerPixel int
	topToBottom   bool
}

// pixel reads one BGR(A) pixel at the cursor.
func (r *tgaReader) pixel() color.NRGBA {
	p := r.data[r.pos : r.pos+r.bytesPerPixel]
	r.pos += r.bytesPerPixel
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}

// put stores the i-th pixel in file order into the image.
func (r *tgaReader) put(i int, c color.NRGBA) {
	x := i % r.width
	y := i / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetNRGBA(x, y, c)
}

func (r *tgaReader) decodeRLE() error {
	total := r.width * r.height
	i := 0
	for i < total {
		if r.pos >= len(r.data) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d", i)
		}
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if r.pos+r.bytesPerPixel > len(r.data) {
				return fmt.Errorf("TGA RLE data truncated at pixel %d", i)
			}
			c := r.pixel()
			for n := 0; n < count && i < total; n++ {
				r.put(i, c)
				i++
			}
			continue
		}

		for n := 0; n < count && i < total; n++ {
			if r.pos+r.bytesPerPixel > len(r.data) {
				return fmt.Errorf("TGA RLE data truncated at pixel %d", i)
			}
			r.put(i, r.pixel())
			i++
		}
	}
	return nil
}
