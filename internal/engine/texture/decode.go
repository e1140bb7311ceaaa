// Package texture loads image files into GPU textures and tracks them by tag.
package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

var (
	// ErrLoad reports an image file that could not be read or decoded.
	ErrLoad = errors.New("texture: cannot load image")

	// ErrUnsupportedFormat reports a decoded image whose channel count is
	// neither 3 (RGB) nor 4 (RGBA).
	ErrUnsupportedFormat = errors.New("texture: unsupported channel count")
)

// Image is decoded pixel data ready for upload: 8 bits per channel,
// tightly packed rows, Channels bytes per pixel.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// DecodeOptions controls how files are turned into Images.
type DecodeOptions struct {
	// FlipVertical stores the bottom scanline first, matching GL's
	// texture coordinate origin.
	FlipVertical bool
	// MaxSize limits the larger image dimension. Bigger images are
	// downsampled preserving aspect ratio. Zero disables the limit.
	MaxSize int
}

// DefaultDecodeOptions returns the options the scene loader uses.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{FlipVertical: true}
}

// DecodeFile reads and decodes an image file. TGA files are recognized by
// extension; everything else goes through the registered image decoders.
func DecodeFile(path string, opts DecodeOptions) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		return FromImage(img, opts)
	}

	return Decode(f, opts)
}

// Decode decodes an image stream in any registered format.
// PNG files are classified by their header color type, since the decoder
// widens gray+alpha to NRGBA.
func Decode(r io.Reader, opts DecodeOptions) (*Image, error) {
	br := bufio.NewReader(r)
	header, _ := br.Peek(pngHeaderSize)
	if n, ok := pngChannels(header); ok && n != 3 && n != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, n)
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return FromImage(img, opts)
}

// FromImage packs an image.Image into 3- or 4-channel bytes.
// Grayscale and alpha-only images are rejected with ErrUnsupportedFormat.
func FromImage(img image.Image, opts DecodeOptions) (*Image, error) {
	channels := Channels(img)
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, channels)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrLoad)
	}

	// Normalize to non-premultiplied RGBA, resampling if too large.
	dst := image.NewNRGBA(fitBounds(b.Dx(), b.Dy(), opts.MaxSize))
	if dst.Bounds().Dx() == b.Dx() && dst.Bounds().Dy() == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	out := &Image{
		Width:    w,
		Height:   h,
		Channels: channels,
		Pix:      make([]byte, w*h*channels),
	}

	for y := 0; y < h; y++ {
		srcY := y
		if opts.FlipVertical {
			srcY = h - 1 - y
		}
		src := dst.Pix[srcY*dst.Stride : srcY*dst.Stride+w*4]
		row := out.Pix[y*w*channels : (y+1)*w*channels]
		if channels == 4 {
			copy(row, src)
			continue
		}
		for x := 0; x < w; x++ {
			row[x*3+0] = src[x*4+0]
			row[x*3+1] = src[x*4+1]
			row[x*3+2] = src[x*4+2]
		}
	}

	return out, nil
}

// Channels reports how many 8-bit channels an image carries once expanded:
// 1 for grayscale or alpha-only, 3 for opaque color, 4 for color with alpha.
func Channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.NYCbCrA:
		return 4
	case *image.Paletted:
		if isGrayPalette(m.Palette) {
			return 1
		}
		if m.Opaque() {
			return 3
		}
		return 4
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return 3
		}
		return 4
	}
	return 4
}

const pngHeaderSize = 26

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngChannels returns the channel count declared by a PNG IHDR color type.
// It reports false for non-PNG data and for palette images, whose count
// depends on the palette.
func pngChannels(header []byte) (int, bool) {
	if len(header) < pngHeaderSize || !bytes.HasPrefix(header, pngSignature) || string(header[12:16]) != "IHDR" {
		return 0, false
	}
	switch header[25] {
	case 0:
		return 1, true
	case 2:
		return 3, true
	case 4:
		return 2, true
	case 6:
		return 4, true
	}
	return 0, false
}

func isGrayPalette(p color.Palette) bool {
	for _, c := range p {
		if _, ok := c.(color.Gray); !ok {
			return false
		}
	}
	return len(p) > 0
}

// fitBounds returns the target rectangle for an image of w x h limited to max.
func fitBounds(w, h, max int) image.Rectangle {
	if max <= 0 || (w <= max && h <= max) {
		return image.Rect(0, 0, w, h)
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return image.Rect(0, 0, max, nh)
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return image.Rect(0, 0, nw, max)
}
