package ebitendev

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/austere"
)

// ErrNotEbitenDevice is returned by Run when the engine was not created
// with a *Device.
var ErrNotEbitenDevice = errors.New("ebitendev: engine device is not an ebitendev.Device")

// RunConfig holds optional host behavior for Run. The window itself is
// configured by the engine's WindowSettings.
type RunConfig struct {
	// ShowStats draws FPS and renderer counters in the top-left corner.
	ShowStats bool
	// SnapshotDir is where SnapshotKey captures are written. Empty disables
	// snapshots.
	SnapshotDir    string
	SnapshotFormat SnapshotFormat
	// SnapshotKey captures the frame; zero means F12.
	SnapshotKey ebiten.Key
	// QuitOnEscape ends the loop when Escape is pressed.
	QuitOnEscape bool
	// OnTick runs once per Ebitengine tick before the frame, for input
	// handling.
	OnTick func(e *austere.Engine) error
}

// Game adapts an Engine to ebiten.Game. Ebitengine ticks Update at a fixed
// rate; the elapsed tick time is accumulated and handed to Engine.Frame on
// the next Draw.
type Game struct {
	engine  *austere.Engine
	dev     *Device
	cfg     RunConfig
	pending float32
	err     error
	overlay *statsOverlay
	snaps   *snapshotter
	w, h    int
}

// NewGame wraps e, which must have been created with a *Device.
func NewGame(e *austere.Engine, cfg RunConfig) (*Game, error) {
	dev, ok := e.Device().(*Device)
	if !ok {
		return nil, ErrNotEbitenDevice
	}
	if cfg.SnapshotKey == 0 {
		cfg.SnapshotKey = ebiten.KeyF12
	}
	g := &Game{engine: e, dev: dev, cfg: cfg}
	if cfg.ShowStats {
		g.overlay = newStatsOverlay()
	}
	if cfg.SnapshotDir != "" {
		g.snaps = &snapshotter{dir: cfg.SnapshotDir, format: cfg.SnapshotFormat}
	}
	return g, nil
}

// Snapshot queues a labeled capture of the next drawn frame. It is a no-op
// without a SnapshotDir.
func (g *Game) Snapshot(label string) {
	if g.snaps != nil {
		g.snaps.queue = append(g.snaps.queue, label)
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.cfg.QuitOnEscape && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.snaps != nil && inpututil.IsKeyJustPressed(g.cfg.SnapshotKey) {
		g.Snapshot("frame")
	}
	if g.cfg.OnTick != nil {
		if err := g.cfg.OnTick(g.engine); err != nil {
			return err
		}
	}
	g.pending += float32(1 / float64(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game: it runs one engine frame into screen.
func (g *Game) Draw(screen *ebiten.Image) {
	dt := g.pending
	g.pending = 0

	g.dev.Begin(screen)
	if err := g.engine.Frame(dt); err != nil {
		// surfaced by the next Update
		g.err = fmt.Errorf("ebitendev: frame: %w", err)
		return
	}
	g.dev.Flush()

	if g.overlay != nil {
		g.overlay.update(dt, g.engine, g.dev)
		g.overlay.draw(screen)
	}
	if g.snaps != nil {
		g.snaps.capture(screen)
	}
}

// Layout implements ebiten.Game. The screen follows the window size and the
// engine is told about every change so cameras can follow the aspect ratio.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.engine.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window configured by e's WindowSettings, initializes e if
// needed and runs it until the window closes or a frame fails. e is shut
// down before Run returns.
func Run(e *austere.Engine, cfg RunConfig) error {
	g, err := NewGame(e, cfg)
	if err != nil {
		return err
	}
	if !e.IsInitialized() {
		if err := e.Initialize(); err != nil {
			return fmt.Errorf("ebitendev: %w", err)
		}
	}
	defer e.Shutdown()
	defer g.dev.Dispose()

	applyWindowSettings(e.Settings().Window)
	logger("Run").Info("starting", "title", e.Settings().Window.Title,
		"width", e.Settings().Window.Width, "height", e.Settings().Window.Height)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func applyWindowSettings(w austere.WindowSettings) {
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetFullscreen(w.Fullscreen)
	ebiten.SetWindowDecorated(!w.Borderless)
	ebiten.SetVsyncEnabled(w.VSync)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

func logger(op string) *slog.Logger {
	return austere.Logger().With("scope", "ebitendev", "op", op)
}
