package texture

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeGPU struct {
	next    uint32
	uploads []*Image
	bound   map[int]uint32
	deleted []uint32
}

func (g *fakeGPU) Upload(img *Image) (uint32, error) {
	g.next++
	g.uploads = append(g.uploads, img)
	return g.next + 100, nil
}

func (g *fakeGPU) Bind(unit int, handle uint32) {
	if g.bound == nil {
		g.bound = make(map[int]uint32)
	}
	g.bound[unit] = handle
}

func (g *fakeGPU) Delete(handles []uint32) {
	g.deleted = append(g.deleted, handles...)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func opaqueRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestDecodeChannels(t *testing.T) {
	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	translucent.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 128})

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, opaqueRGBA(4, 4), nil))

	tests := []struct {
		name     string
		data     []byte
		channels int
		err      error
	}{
		{"opaque png", encodePNG(t, opaqueRGBA(2, 2)), 3, nil},
		{"alpha png", encodePNG(t, translucent), 4, nil},
		{"jpeg", jpg.Bytes(), 3, nil},
		{"gray png", encodePNG(t, image.NewGray(image.Rect(0, 0, 2, 2))), 0, ErrUnsupportedChannels},
		{"gray alpha png", grayAlphaPNG(t, 2, 2), 0, ErrUnsupportedChannels},
		{"tga", rgbTGA(2, 2), 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.channels, img.Channels)
		})
	}
}

// grayAlphaPNG builds a colour type 4 PNG, which image/png never writes.
func grayAlphaPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var raw bytes.Buffer
	for y := 0; y < h; y++ {
		raw.WriteByte(0) // filter: none
		for x := 0; x < w; x++ {
			raw.Write([]byte{200, 128})
		}
	}
	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(h))
	ihdr[8], ihdr[9] = 8, 4

	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")
	chunk := func(typ string, data []byte) {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(data)))
		out.Write(n[:])
		body := append([]byte(typ), data...)
		out.Write(body)
		binary.BigEndian.PutUint32(n[:], crc32.ChecksumIEEE(body))
		out.Write(n[:])
	}
	chunk("IHDR", ihdr)
	chunk("IDAT", idat.Bytes())
	chunk("IEND", nil)
	return out.Bytes()
}

// rgbTGA builds an uncompressed 24-bit TGA filled with blue.
func rgbTGA(w, h int) []byte {
	header := make([]byte, 18)
	header[2] = 2 // uncompressed true colour
	binary.LittleEndian.PutUint16(header[12:], uint16(w))
	binary.LittleEndian.PutUint16(header[14:], uint16(h))
	header[16] = 24
	out := append([]byte{}, header...)
	for i := 0; i < w*h; i++ {
		out = append(out, 255, 0, 0) // BGR
	}
	return out
}

func TestDecodeSniffsFormat(t *testing.T) {
	img, err := Decode(encodePNG(t, opaqueRGBA(2, 2)))
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, []uint8{255, 0, 0, 255}, img.Pix[0:4])

	img, err = Decode(rgbTGA(2, 2))
	require.NoError(t, err)
	assert.Equal(t, "tga", img.Format)
	assert.Equal(t, []uint8{0, 0, 255, 255}, img.Pix[0:4])
}

func TestDecodeFlipsVertically(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255}) // top
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255}) // bottom

	out, err := Decode(encodePNG(t, img))
	require.NoError(t, err)
	require.Len(t, out.Pix, 8)

	assert.Equal(t, []uint8{0, 0, 255, 255}, out.Pix[0:4], "first row is the bottom row")
	assert.Equal(t, []uint8{255, 0, 0, 255}, out.Pix[4:8])
}

func TestDecodeRejectsNonImage(t *testing.T) {
	// zip magic
	_, err := Decode([]byte{'P', 'K', 0x03, 0x04, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Decode(nil)
	assert.Error(t, err)
}

func TestLoadAssignsSlotsInOrder(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.png", encodePNG(t, opaqueRGBA(2, 2)))
	gray := writeFile(t, dir, "gray.png", encodePNG(t, image.NewGray(image.Rect(0, 0, 2, 2))))

	gpu := &fakeGPU{}
	r := NewRegistry(gpu, zap.NewNop())

	require.NoError(t, r.Load(good, "floor"))
	assert.ErrorIs(t, r.Load(gray, "gray"), ErrUnsupportedChannels)
	assert.Error(t, r.Load(filepath.Join(dir, "missing.png"), "missing"))
	require.NoError(t, r.Load(good, "wall"))

	assert.Equal(t, 0, r.FindSlot("floor"))
	assert.Equal(t, 1, r.FindSlot("wall"), "failed loads consume no slot")
	assert.Equal(t, -1, r.FindSlot("gray"))
	assert.Equal(t, -1, r.FindHandle("missing"))
	assert.Equal(t, 102, r.FindHandle("wall"))
	assert.Equal(t, 2, r.Count())
}

func TestLoadDuplicateTagRejected(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "roof.png", encodePNG(t, opaqueRGBA(2, 2)))

	core, logs := observer.New(zap.DebugLevel)
	gpu := &fakeGPU{}
	r := NewRegistry(gpu, zap.New(core))

	require.NoError(t, r.Load(p, "roof"))
	err := r.Load(p, "roof")
	assert.True(t, errors.Is(err, ErrDuplicateTag))
	assert.Equal(t, 1, r.Count())
	assert.Len(t, gpu.uploads, 1)
	assert.Equal(t, 1, logs.FilterMessage("texture load failed").Len())
}

func TestLoadFull(t *testing.T) {
	r := NewRegistry(&fakeGPU{}, zap.NewNop())
	r.ReadFile = func(string) ([]byte, error) { return encodePNG(t, opaqueRGBA(1, 1)), nil }

	for i := 0; i < MaxSlots; i++ {
		require.NoError(t, r.Load("x.png", string(rune('a'+i))))
	}
	assert.ErrorIs(t, r.Load("x.png", "overflow"), ErrFull)
}

func TestLoadAllMatchesSequentialOrder(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.png", encodePNG(t, opaqueRGBA(2, 2)))
	gray := writeFile(t, dir, "gray.png", encodePNG(t, image.NewGray(image.Rect(0, 0, 2, 2))))

	r := NewRegistry(&fakeGPU{}, zap.NewNop())
	r.Workers = 3
	errs := r.LoadAll(context.Background(), []Source{
		{Path: good, Tag: "a"},
		{Path: gray, Tag: "b"},
		{Path: good, Tag: "c"},
		{Path: good, Tag: "a"},
		{Path: good, Tag: "d"},
	})

	require.Len(t, errs, 5)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], ErrUnsupportedChannels)
	assert.NoError(t, errs[2])
	assert.ErrorIs(t, errs[3], ErrDuplicateTag)
	assert.NoError(t, errs[4])

	assert.Equal(t, []Entry{{"a", 101}, {"c", 102}, {"d", 103}}, r.Entries())
}

func TestLoadAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRegistry(&fakeGPU{}, zap.NewNop())
	errs := r.LoadAll(ctx, []Source{{Path: "a.png", Tag: "a"}})
	assert.ErrorIs(t, errs[0], context.Canceled)
	assert.Zero(t, r.Count())
}

func TestLoadAllReleasesWorkers(t *testing.T) {
	r := NewRegistry(&fakeGPU{}, zap.NewNop())
	r.Workers = 4
	r.ReadFile = func(string) ([]byte, error) { return encodePNG(t, opaqueRGBA(1, 1)), nil }

	before := runtime.NumGoroutine()
	for i := 0; i < 5; i++ {
		r.LoadAll(context.Background(), []Source{{Path: "a.png", Tag: string(rune('a' + i))}})
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond, "decode workers still running")
	assert.Equal(t, 5, r.Count())
}

func TestBindAllAndDestroy(t *testing.T) {
	gpu := &fakeGPU{}
	r := NewRegistry(gpu, zap.NewNop())
	r.ReadFile = func(string) ([]byte, error) { return encodePNG(t, opaqueRGBA(1, 1)), nil }
	require.NoError(t, r.Load("a.png", "a"))
	require.NoError(t, r.Load("b.png", "b"))

	r.BindAll()
	assert.Equal(t, map[int]uint32{0: 101, 1: 102}, gpu.bound)

	r.Destroy()
	assert.Equal(t, []uint32{101, 102}, gpu.deleted)
	assert.Zero(t, r.Count())
	assert.Equal(t, -1, r.FindSlot("a"))
}
