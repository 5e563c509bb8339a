package austere

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Texture is a decoded 2D image in straight-alpha NRGBA form. Whether any
// pixel has alpha below 255 is computed once at construction.
type Texture struct {
	// Name is informational, usually the source path.
	Name string

	img             *image.NRGBA
	hasTransparency bool
}

// NewTexture wraps img. A nil img yields an invalid texture.
func NewTexture(name string, img image.Image) *Texture {
	t := &Texture{Name: name}
	if img == nil {
		return t
	}
	t.img = toNRGBA(img)
	t.hasTransparency = scanTransparency(t.img)
	return t
}

// decoders maps file extensions to image decoders. TGA has no magic
// number, so formats are picked by extension rather than sniffed.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// DecodeTexture decodes image data from r. The format is chosen by the
// extension of name (PNG, JPEG, BMP or TGA); other names fall back to
// sniffing the registered formats.
func DecodeTexture(name string, r io.Reader) (*Texture, error) {
	var (
		img image.Image
		err error
	)
	if dec, ok := decoders[strings.ToLower(filepath.Ext(name))]; ok {
		img, err = dec(r)
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}
	return NewTexture(name, img), nil
}

// LoadTexture reads and decodes the image file at path.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeTexture(path, bufio.NewReader(f))
}

// IsValid reports whether the texture holds image data.
func (t *Texture) IsValid() bool { return t != nil && t.img != nil }

// HasTransparency reports whether any pixel has alpha below 255.
func (t *Texture) HasTransparency() bool { return t != nil && t.hasTransparency }

// Image returns the pixel data, or nil for an invalid texture.
func (t *Texture) Image() *image.NRGBA { return t.img }

// Width returns the width in pixels.
func (t *Texture) Width() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dx()
}

// Height returns the height in pixels.
func (t *Texture) Height() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dy()
}

// toNRGBA converts any image to NRGBA, origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func scanTransparency(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 255 {
			return true
		}
	}
	return false
}
