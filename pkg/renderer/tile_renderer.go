package renderer

import (
	"image"

	"github.com/orbview/atmosray/pkg/core"
)

// Tile represents a rectangular region of the image to render
type Tile struct {
	Bounds image.Rectangle
	TileX  int
	TileY  int
}

// NewTileGrid divides the image into square tiles of the given size; tiles on
// the right and bottom edges may be smaller.
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				Bounds: image.Rect(x0, y0, x1, y1),
				TileX:  tileX,
				TileY:  tileY,
			})
		}
	}

	return tiles
}

// TileRenderer shades every pixel of a tile through the camera. It holds no
// mutable state, so one instance per worker renders concurrently without
// synchronization.
type TileRenderer struct {
	shader  Shader
	camera  *Camera
	offsets []subpixelOffset
}

type subpixelOffset struct {
	dx, dy float64
}

// NewTileRenderer creates a tile renderer with NxN supersampling, where N is
// samplesPerSide. Sub-pixel offsets form a regular grid, so repeated renders
// of the same scene are bit-identical.
func NewTileRenderer(shader Shader, camera *Camera, samplesPerSide int) *TileRenderer {
	if samplesPerSide < 1 {
		samplesPerSide = 1
	}

	n := samplesPerSide
	offsets := make([]subpixelOffset, 0, n*n)
	for sy := 0; sy < n; sy++ {
		for sx := 0; sx < n; sx++ {
			// Centered grid: offsets in (-0.5, 0.5)
			offsets = append(offsets, subpixelOffset{
				dx: (float64(sx)+0.5)/float64(n) - 0.5,
				dy: (float64(sy)+0.5)/float64(n) - 0.5,
			})
		}
	}

	return &TileRenderer{
		shader:  shader,
		camera:  camera,
		offsets: offsets,
	}
}

// RenderTile renders all pixels within the tile bounds into the framebuffer
// and returns per-tile statistics.
func (tr *TileRenderer) RenderTile(tile *Tile, fb *Framebuffer) *RenderStats {
	stats := NewRenderStats()
	invSamples := 1.0 / float64(len(tr.offsets))

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			var sum core.Vec3
			for _, off := range tr.offsets {
				ray := tr.camera.GetRay(float64(x)+off.dx, float64(y)+off.dy)
				sum = sum.Add(tr.shader.ShadeRay(ray))
			}
			fb.Set(x, y, sum.Multiply(invSamples))
			stats.AddPixelStats(len(tr.offsets))
		}
	}

	return stats
}
