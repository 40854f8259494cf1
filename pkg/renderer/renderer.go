// Package renderer turns a per-ray shader into images: it owns the camera,
// the HDR framebuffer, and a tile-based worker pool, and streams completed
// tiles to an optional callback for progressive display.
package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/orbview/atmosray/pkg/core"
)

// Shader computes the color seen along a single viewing ray. The ray
// direction is always unit length.
type Shader interface {
	ShadeRay(ray core.Ray) core.Vec3
}

// Logger is the minimal logging interface the renderer needs
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// Config controls image dimensions and render parallelism
type Config struct {
	Width          int
	Height         int
	TileSize       int
	SamplesPerSide int // NxN supersampling grid per pixel
	NumWorkers     int // 0 means one per CPU
	Gamma          float64
}

// DefaultConfig returns sensible render settings for an interactive preview
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		TileSize:       64,
		SamplesPerSide: 2,
		NumWorkers:     0,
		Gamma:          DefaultGamma,
	}
}

// Validate checks the configuration for usable values
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("invalid tile size %d", c.TileSize)
	}
	if c.SamplesPerSide <= 0 {
		return fmt.Errorf("invalid samples per side %d", c.SamplesPerSide)
	}
	return nil
}

// TileUpdate notifies a listener that one tile has finished rendering
type TileUpdate struct {
	TileX      int
	TileY      int
	Bounds     image.Rectangle
	Image      *image.RGBA // tile-local pixels, gamma corrected
	TileNumber int
	TotalTiles int
}

// Renderer orchestrates a full-frame render
type Renderer struct {
	shader Shader
	camera *Camera
	config Config
	logger Logger
}

// NewRenderer creates a renderer for the given shader and camera. A nil
// logger disables render logging.
func NewRenderer(shader Shader, camera *Camera, config Config, logger Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("renderer config: %w", err)
	}
	if shader == nil {
		return nil, fmt.Errorf("renderer config: shader is required")
	}
	if camera == nil {
		return nil, fmt.Errorf("renderer config: camera is required")
	}
	if logger == nil {
		logger = nopLogger{}
	}
	if config.Gamma <= 0 {
		config.Gamma = DefaultGamma
	}
	return &Renderer{
		shader: shader,
		camera: camera,
		config: config,
		logger: logger,
	}, nil
}

// Render renders the full frame. Completed tiles are reported through
// tileCallback (which may be nil) in completion order. Rendering stops early
// if the context is canceled, returning the context error.
func (r *Renderer) Render(ctx context.Context, tileCallback func(TileUpdate)) (*Framebuffer, *RenderStats, error) {
	start := time.Now()

	fb := NewFramebuffer(r.config.Width, r.config.Height)
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)

	pool := NewWorkerPool(r.config.NumWorkers, len(tiles))
	pool.Start(ctx, r.shader, r.camera, r.config.SamplesPerSide, fb)
	pool.Submit(ctx, tiles)

	r.logger.Printf("Rendering %dx%d: %d tiles across %d workers",
		r.config.Width, r.config.Height, len(tiles), pool.NumWorkers())

	stats := NewRenderStats()
	completed := 0

	for result := range pool.Results() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		stats.Merge(result.Stats)
		completed++

		if tileCallback != nil {
			tileCallback(TileUpdate{
				TileX:      result.Tile.TileX,
				TileY:      result.Tile.TileY,
				Bounds:     result.Tile.Bounds,
				Image:      fb.TileImage(result.Tile.Bounds, r.config.Gamma),
				TileNumber: completed,
				TotalTiles: len(tiles),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	stats.Finalize()
	r.logger.Printf("Render complete: %d pixels, %d samples in %v",
		stats.TotalPixels, stats.TotalSamples, time.Since(start).Round(time.Millisecond))

	return fb, stats, nil
}
