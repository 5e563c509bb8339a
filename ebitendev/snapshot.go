package ebitendev

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// SnapshotFormat selects the file format of captured frames.
type SnapshotFormat string

const (
	SnapshotPNG  SnapshotFormat = "png"
	SnapshotWebP SnapshotFormat = "webp"
)

// snapshotter queues labeled captures and writes them at the end of Draw.
type snapshotter struct {
	dir    string
	format SnapshotFormat
	queue  []string
}

// capture reads the rendered frame for every queued label and writes one
// file per label into dir with a timestamped name.
func (s *snapshotter) capture(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	log := logger("Snapshot")

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		log.Error("mkdir failed", "dir", s.dir, "err", err)
		s.queue = s.queue[:0]
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.queue {
		path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.%s", stamp, sanitizeLabel(label), s.format))
		if err := writeImage(path, img, s.format); err != nil {
			log.Error("write failed", "err", err)
			continue
		}
		log.Info("saved", "path", path)
	}
	s.queue = s.queue[:0]
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writeImage encodes img to path in format.
func writeImage(path string, img image.Image, format SnapshotFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeImage(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encodeImage(w io.Writer, img image.Image, format SnapshotFormat) error {
	switch format {
	case SnapshotPNG, "":
		return png.Encode(w, img)
	case SnapshotWebP:
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
