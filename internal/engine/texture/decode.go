// Package texture loads scene images and keeps the tag → GPU texture registry.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/anthonynsimon/bild/transform"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrUnsupportedChannels is returned for images that are neither RGB nor RGBA.
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	// ErrNotImage is returned when the data is a recognised non-image format.
	ErrNotImage = errors.New("not an image")
)

// Image is a decoded texture ready for upload. Pix holds tightly packed
// RGBA rows, bottom row first, which is the order GL expects.
type Image struct {
	Width    int
	Height   int
	Channels int
	Format   string
	Pix      []uint8
}

// decoders maps sniffed kinds to codecs. Codecs are called directly: the
// tga package registers itself with an empty magic string, so image.Decode
// would hand every format to it.
var decoders = map[types.Type]func(io.Reader) (image.Image, error){
	matchers.TypePng:  png.Decode,
	matchers.TypeJpeg: jpeg.Decode,
	matchers.TypeGif:  gif.Decode,
	matchers.TypeBmp:  bmp.Decode,
	matchers.TypeTiff: tiff.Decode,
	matchers.TypeWebp: webp.Decode,
}

// Decode decodes an encoded image and flips it vertically.
// TGA has no magic number, so data no sniffer recognises is tried as TGA.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}

	kind, _ := filetype.Match(data)
	format := kind.Extension
	decode, ok := decoders[kind]
	switch {
	case kind == filetype.Unknown:
		decode, format = tga.Decode, "tga"
	case !ok && filetype.IsImage(data):
		return nil, fmt.Errorf("decode image: unsupported format %s", kind.MIME.Value)
	case !ok:
		return nil, fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	channels := Channels(img)
	if kind == matchers.TypePng {
		channels = pngChannels(data, channels)
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New("image has no pixels")
	}
	flipped := transform.FlipV(img)

	return &Image{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: channels,
		Format:   format,
		Pix:      flipped.Pix,
	}, nil
}

// Channels reports the channel count the source image carries.
// Images without an alpha channel, or whose alpha is fully opaque, count as RGB.
func Channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return 3
		}
	}
	return 4
}

// PNG colour types, from the IHDR chunk.
const (
	pngGray      = 0
	pngRGB       = 2
	pngPalette   = 3
	pngGrayAlpha = 4
	pngRGBA      = 6
)

// pngChannels reads the channel count from the IHDR colour type. The Go
// decoder widens gray+alpha to NRGBA, which would hide a two-channel file.
// Palette images keep the count derived from the decoded pixels.
func pngChannels(data []byte, decoded int) int {
	// 8-byte signature, then length, "IHDR", width, height, bit depth.
	const colorTypeOffset = 8 + 4 + 4 + 4 + 4 + 1
	if len(data) <= colorTypeOffset {
		return decoded
	}
	switch data[colorTypeOffset] {
	case pngGray:
		return 1
	case pngGrayAlpha:
		return 2
	case pngRGB:
		return 3
	case pngRGBA:
		return 4
	}
	return decoded
}
