package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/tinyrange/noe/internal/app"
	"github.com/tinyrange/noe/internal/graphics"
	"github.com/tinyrange/noe/internal/input"
	"github.com/tinyrange/noe/internal/logging"
	"github.com/tinyrange/noe/internal/text"
)

type options struct {
	configPath string
	backend    string
	screenshot string
	logOutput  io.Writer
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&opts.backend, "backend", "", "window backend (default: platform native)")
	fs.StringVar(&opts.screenshot, "screenshot", "", "write the first frame to this PNG file and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		slog.Error("parse flags", "err", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		slog.Error("noe", "err", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.backend != "" {
		cfg.Window.Backend = opts.backend
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Output: opts.logOutput, Prefix: "noe"})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	logging.Install(logger)

	a, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.Close()

	r := a.Renderer()
	checker, err := r.NewTexture(makeChecker(8))
	if err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	defer r.UnloadTexture(checker)

	font, err := text.Default(r)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	defer font.Unload(r)

	slog.Info("scale", "scale", a.Window().Scale())

	const speed = 4
	x, y := float32(100), float32(100)
	size := float32(128)
	var lastKey input.Key

	for !a.WindowShouldClose() {
		a.PollInputEvents()
		in := a.Input()

		if in.IsKeyDown(input.KeyW) {
			y -= speed
		}
		if in.IsKeyDown(input.KeyS) {
			y += speed
		}
		if in.IsKeyDown(input.KeyA) {
			x -= speed
		}
		if in.IsKeyDown(input.KeyD) {
			x += speed
		}
		if _, wheel := in.MouseWheel(); wheel != 0 {
			size = max(16, size+wheel*8)
		}
		for k := in.GetKeyPressed(); k != input.KeyInvalid; k = in.GetKeyPressed() {
			lastKey = k
		}
		if in.IsKeyPressed(input.KeyF11) {
			a.SetWindowFullscreen(!a.IsWindowFullscreen())
		}

		if err := a.BeginDrawing(); err != nil {
			return fmt.Errorf("begin drawing: %w", err)
		}
		a.ClearBackground(graphics.Color{R: 26, G: 31, B: 41, A: 255})

		mx, my := in.MousePosition()
		draw(a, r.DrawRectangle(graphics.Red, 20, 20, 100, 50))
		draw(a, r.DrawTriangle(graphics.Green,
			graphics.Vector2{X: 160, Y: 70}, graphics.Vector2{X: 210, Y: 20}, graphics.Vector2{X: 260, Y: 70}))
		draw(a, r.DrawCircle(graphics.Blue, graphics.Vector2{X: mx, Y: my}, 24))
		draw(a, r.DrawTexture(checker, x, y, size, size))

		status := fmt.Sprintf("WASD to move, wheel to scale, F11 fullscreen\nt=%dms last key=%s",
			a.GetTimeMillis(), lastKey)
		draw(a, font.Draw(r, status, 10, float32(cfg.Window.Height)-40, 1, graphics.Yellow))

		if opts.screenshot != "" {
			if err := r.Flush(a.Shader()); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
			if err := saveScreenshot(a, opts.screenshot); err != nil {
				return fmt.Errorf("screenshot: %w", err)
			}
			slog.Info("saved screenshot", "path", opts.screenshot)
			return nil
		}

		if err := a.EndDrawing(); err != nil {
			slog.Warn("end drawing", "err", err)
		}
	}
	return nil
}

// draw logs a primitive that did not fit. A full batch is flushed so the
// following primitives have room.
func draw(a *app.App, err error) {
	if err == nil {
		return
	}
	slog.Warn("draw", "err", err)
	if graphics.IsCapacityError(err) {
		if err := a.Renderer().Flush(a.Shader()); err != nil {
			slog.Warn("flush", "err", err)
		}
	}
}

func saveScreenshot(a *app.App, path string) error {
	w, h := a.Window().BackingSize()
	img, err := a.Renderer().Screenshot(w, h)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func makeChecker(n int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	red := color.NRGBA{R: 0xff, G: 0x66, B: 0x66, A: 0xff}
	green := color.NRGBA{R: 0x66, G: 0xff, B: 0x66, A: 0xff}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, green)
			}
		}
	}
	return img
}
