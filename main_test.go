package main

import (
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestRunScreenshot(t *testing.T) {
	keepDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "frame.png")

	require.NoError(t, run(options{backend: "stub", screenshot: path, logOutput: io.Discard}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRunReturnsErrors(t *testing.T) {
	keepDefaultLogger(t)
	dir := t.TempDir()

	err := run(options{configPath: filepath.Join(dir, "missing.toml"), logOutput: io.Discard})
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = run(options{backend: "nope", logOutput: io.Discard})
	assert.ErrorContains(t, err, "init")

	// A failure inside the frame loop is returned to the caller.
	err = run(options{
		backend:    "stub",
		screenshot: filepath.Join(dir, "no", "such", "dir", "frame.png"),
		logOutput:  io.Discard,
	})
	assert.ErrorContains(t, err, "screenshot")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
