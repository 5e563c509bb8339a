package ebitendev

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"frame", "frame"},
		{"  spaced out  ", "spaced_out"},
		{"a/b\\c:d", "a_b_c_d"},
		{"v1.2-final", "v1.2-final"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"héllo", "h_llo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in), "sanitizeLabel(%q)", tt.in)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-transparent
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{127, 63, 0, 128}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(2, 0))
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 80), 200, 255})
		}
	}
	return img
}

func TestEncodeImagePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeImage(&buf, testImage(), SnapshotPNG))
	got, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), got.Bounds())
}

func TestEncodeImageWebP(t *testing.T) {
	src := testImage()
	var buf bytes.Buffer
	require.NoError(t, encodeImage(&buf, src, SnapshotWebP))
	got, err := webp.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), got.Bounds())
	// lossless
	r, g, b, a := got.At(3, 2).RGBA()
	assert.Equal(t, [4]uint32{180, 160, 200, 255}, [4]uint32{r >> 8, g >> 8, b >> 8, a >> 8})
}

func TestEncodeImageUnknownFormat(t *testing.T) {
	assert.Error(t, encodeImage(&bytes.Buffer{}, testImage(), "gif"))
}

func TestWriteImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	require.NoError(t, writeImage(path, testImage(), SnapshotPNG))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, writeImage(filepath.Join(dir, "missing", "shot.png"), testImage(), SnapshotPNG))
}

func TestSnapshotterNoQueueIsNoOp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	s := &snapshotter{dir: dir, format: SnapshotPNG}
	s.capture(nil)
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "nothing queued, nothing created")
}
