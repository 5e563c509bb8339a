package ebitendev

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/austere"
)

// overlayInterval is how often, in seconds, the overlay text is redrawn.
const overlayInterval = 0.5

// statsOverlay draws FPS and frame counters in the top-left corner. The text
// is rendered into its own image every overlayInterval seconds and blitted
// each frame.
type statsOverlay struct {
	img     *ebiten.Image
	elapsed float32
	text    string
}

func newStatsOverlay() *statsOverlay {
	// 180x80 fits six DebugPrint lines
	return &statsOverlay{img: ebiten.NewImage(180, 80), elapsed: overlayInterval}
}

// update redraws the text when the interval has passed.
func (o *statsOverlay) update(dt float32, e *austere.Engine, dev *Device) {
	o.elapsed += dt
	if o.elapsed < overlayInterval {
		return
	}
	o.elapsed = 0
	o.text = overlayText(e.FPS(), ebiten.ActualTPS(), e.Renderer().Stats(), dev.Stats())

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(4, 4)
	screen.DrawImage(o.img, &op)
}

func overlayText(fps float32, tps float64, r austere.FrameStats, d DeviceStats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nDraws: %d\nCulled: %d/%d\nBatches: %d+%d\nTris: %d",
		fps, tps, r.DrawCalls, r.Culled, r.Submitted, r.OpaqueBatches, r.TransparentBatches, d.Triangles)
}
