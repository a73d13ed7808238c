package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/tinyrange/noe/internal/graphics"
	"github.com/tinyrange/noe/internal/input"
)

// Config is the application configuration, usually read from a TOML file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	OpenGL   OpenGLConfig   `toml:"opengl"`
	Renderer RendererConfig `toml:"renderer"`
	Input    InputConfig    `toml:"input"`
	Log      LogConfig      `toml:"log"`
	Assets   AssetsConfig   `toml:"assets"`
}

type WindowConfig struct {
	// Backend is a registered window backend; empty selects the platform's.
	Backend    string `toml:"backend"`
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Visible    bool   `toml:"visible"`
	Resizable  bool   `toml:"resizable"`
	Fullscreen bool   `toml:"fullscreen"`
}

type OpenGLConfig struct {
	Major       int  `toml:"major"`
	Minor       int  `toml:"minor"`
	CoreProfile bool `toml:"core_profile"`
}

type RendererConfig struct {
	MaxVertices int `toml:"max_vertices"`
	MaxElements int `toml:"max_elements"`
	MaxTextures int `toml:"max_textures"`
}

type InputConfig struct {
	// ExitKey closes the window while held. "none" disables it.
	ExitKey      input.Key `toml:"exit_key"`
	KeyQueueSize int       `toml:"key_queue_size"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
	HotReload      bool   `toml:"hot_reload"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:   "Noe Window",
			Width:   800,
			Height:  600,
			Visible: true,
		},
		OpenGL: OpenGLConfig{
			Major: 3,
			Minor: 3,
		},
		Renderer: RendererConfig{
			MaxVertices: graphics.DefaultMaxVertices,
			MaxElements: graphics.DefaultMaxElements,
			MaxTextures: graphics.MaxTextureSlots,
		},
		Input: InputConfig{
			ExitKey:      input.KeyEscape,
			KeyQueueSize: input.DefaultKeyPressedQueueSize,
		},
		Log: LogConfig{Level: "info"},
	}
}

var ErrInvalidConfig = errors.New("app: invalid config")

// Validate checks the values New cannot start with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.OpenGL.Major < 3 || (c.OpenGL.Major == 3 && c.OpenGL.Minor < 3):
		return fmt.Errorf("%w: OpenGL %d.%d is older than 3.3", ErrInvalidConfig, c.OpenGL.Major, c.OpenGL.Minor)
	case c.Renderer.MaxVertices < 0 || c.Renderer.MaxElements < 0:
		return fmt.Errorf("%w: negative renderer capacity", ErrInvalidConfig)
	case c.Renderer.MaxTextures < 0 || c.Renderer.MaxTextures > graphics.MaxTextureSlots:
		return fmt.Errorf("%w: max_textures must be within 0..%d", ErrInvalidConfig, graphics.MaxTextureSlots)
	case c.Input.KeyQueueSize < 0:
		return fmt.Errorf("%w: negative key queue size", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads path over DefaultConfig. An empty path returns the
// defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("app: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return cfg, fmt.Errorf("app: parse config: %w", err)
	}
	return cfg, cfg.Validate()
}
