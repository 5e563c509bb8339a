package austere

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// TextureFilter selects texture sampling.
type TextureFilter string

const (
	FilterNearest TextureFilter = "nearest"
	FilterLinear  TextureFilter = "linear"
)

// WindowSettings configures the host window. The core never opens a window;
// hosts such as ebitendev read these.
type WindowSettings struct {
	Title      string `json:"title" toml:"title" yaml:"title"`
	Width      int    `json:"width" toml:"width" yaml:"width"`
	Height     int    `json:"height" toml:"height" yaml:"height"`
	Fullscreen bool   `json:"fullscreen" toml:"fullscreen" yaml:"fullscreen"`
	Resizable  bool   `json:"resizable" toml:"resizable" yaml:"resizable"`
	Borderless bool   `json:"borderless" toml:"borderless" yaml:"borderless"`
	VSync      bool   `json:"vsync" toml:"vsync" yaml:"vsync"`
}

// GraphicsSettings configures texture sampling and anti-aliasing.
type GraphicsSettings struct {
	MinFilter       TextureFilter `json:"min_filter" toml:"min_filter" yaml:"min_filter"`
	MagFilter       TextureFilter `json:"mag_filter" toml:"mag_filter" yaml:"mag_filter"`
	GenerateMipmaps bool          `json:"generate_mipmaps" toml:"generate_mipmaps" yaml:"generate_mipmaps"`
	// MSAA is 0, 2, 4, 8 or 16 samples.
	MSAA int `json:"msaa" toml:"msaa" yaml:"msaa"`
	// Anisotropy is 1, 2, 4, 8 or 16.
	Anisotropy int `json:"anisotropy" toml:"anisotropy" yaml:"anisotropy"`
}

// RendererSettings configures the state PrepareFrame applies every frame.
type RendererSettings struct {
	ClearColor  Color `json:"clear_color" toml:"clear_color" yaml:"clear_color"`
	DepthTest   bool  `json:"depth_test" toml:"depth_test" yaml:"depth_test"`
	FaceCulling bool  `json:"face_culling" toml:"face_culling" yaml:"face_culling"`
}

// Settings groups all engine configuration.
type Settings struct {
	Window   WindowSettings   `json:"window" toml:"window" yaml:"window"`
	Graphics GraphicsSettings `json:"graphics" toml:"graphics" yaml:"graphics"`
	Renderer RendererSettings `json:"renderer" toml:"renderer" yaml:"renderer"`
}

// DefaultSettings returns an 800x600 resizable vsynced window, linear
// filtering and a dark grey clear color with depth test and back-face
// culling on.
func DefaultSettings() Settings {
	return Settings{
		Window: WindowSettings{
			Title:     "Austere Engine",
			Width:     800,
			Height:    600,
			Resizable: true,
			VSync:     true,
		},
		Graphics: GraphicsSettings{
			MinFilter:       FilterLinear,
			MagFilter:       FilterLinear,
			GenerateMipmaps: true,
			MSAA:            0,
			Anisotropy:      1,
		},
		Renderer: DefaultRendererSettings(),
	}
}

// DefaultRendererSettings returns the renderer part of DefaultSettings.
func DefaultRendererSettings() RendererSettings {
	return RendererSettings{
		ClearColor:  Color{0.1, 0.1, 0.1, 1},
		DepthTest:   true,
		FaceCulling: true,
	}
}

// ErrInvalidSettings is wrapped by every Validate failure.
var ErrInvalidSettings = errors.New("austere: invalid settings")

// Validate checks window size, filters and sample levels.
func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalidSettings, s.Window.Width, s.Window.Height))
	}
	for _, f := range []TextureFilter{s.Graphics.MinFilter, s.Graphics.MagFilter} {
		if f != FilterNearest && f != FilterLinear {
			errs = append(errs, fmt.Errorf("%w: texture filter %q", ErrInvalidSettings, f))
		}
	}
	switch s.Graphics.MSAA {
	case 0, 2, 4, 8, 16:
	default:
		errs = append(errs, fmt.Errorf("%w: msaa %d", ErrInvalidSettings, s.Graphics.MSAA))
	}
	switch s.Graphics.Anisotropy {
	case 1, 2, 4, 8, 16:
	default:
		errs = append(errs, fmt.Errorf("%w: anisotropy %d", ErrInvalidSettings, s.Graphics.Anisotropy))
	}
	return errors.Join(errs...)
}

// LoadSettings reads a .toml, .yaml/.yml or .json file over
// DefaultSettings, so keys missing from the file keep their defaults. The
// result is validated.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := decodeSettings(path, data, &s); err != nil {
		return DefaultSettings(), err
	}
	if err := s.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("settings: %s: %w", path, err)
	}
	return s, nil
}

func decodeSettings(path string, data []byte, s *Settings) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, s)
	case ".json":
		err = json.Unmarshal(data, s)
	default:
		return fmt.Errorf("settings: unsupported format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return nil
}

// Save writes s to path in the format given by its extension.
func (s Settings) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		data, err = toml.Marshal(s)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
	default:
		return fmt.Errorf("settings: unsupported format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}
