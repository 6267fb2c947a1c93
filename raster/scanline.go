package raster

import "image/color"

// DrawBehavior mirrors scene.DrawBehavior's values locally so raster has no
// import-time dependency on scene; whatever owns both maps one enum to the
// other when it calls BuildScanLines.
type DrawBehavior int

const (
	DrawPGZ1BG DrawBehavior = iota
	DrawHorizontalParallax
	DrawVerticalParallax
	DrawCustomTileScanLines
)

// TileScanLine is one precomputed source-scroll descriptor for a single
// on-screen scanline, ported from SoftwareRenderer's TileScanLine struct.
// SrcX/SrcY/DeltaX/DeltaY are 16.16 fixed point, matching the <<16 scaling
// the source applies before its per-pixel accumulation loop.
type TileScanLine struct {
	SrcX, SrcY       int64
	DeltaX, DeltaY   int64
	MaxHorz, MaxVert int
	Opacity          float64
}

// TileGrid is the minimal tile source the scanline renderer reads, keeping
// raster decoupled from scene's tile bit layout; package scene has no type
// that implements it, so callers supply their own.
type TileGrid interface {
	Dimensions() (width, height, tileSize int)
	TileAt(tx, ty int) (id int, flipX, flipY bool)
}

func toFixed(v float64) int64 { return int64(v * 65536) }

// BuildScanLines produces one TileScanLine per visible row according to
// behavior, following the per-row scroll/deform construction in
// SoftwareRenderer's scanline setup. DrawCustomTileScanLines returns a
// zeroed slice for the caller to fill directly, matching the source's
// CustomTileScanLines behaviour of handing scanline control to a script
// callback.
func BuildScanLines(behavior DrawBehavior, viewHeight int, scrollX, scrollY float64, rowDeform []float64, opacity float64) []TileScanLine {
	lines := make([]TileScanLine, viewHeight)
	switch behavior {
	case DrawHorizontalParallax:
		for y := 0; y < viewHeight; y++ {
			rowScrollX := scrollX
			if y < len(rowDeform) {
				rowScrollX += rowDeform[y]
			}
			lines[y] = TileScanLine{
				SrcX: toFixed(rowScrollX), SrcY: toFixed(scrollY + float64(y)),
				DeltaX: 1 << 16, DeltaY: 0, Opacity: opacity,
			}
		}
	case DrawVerticalParallax:
		for y := 0; y < viewHeight; y++ {
			lines[y] = TileScanLine{
				SrcX: toFixed(scrollX), SrcY: toFixed(scrollY + float64(y)),
				DeltaX: 1 << 16, DeltaY: 1 << 16, Opacity: opacity,
			}
		}
	case DrawCustomTileScanLines:
		// left zeroed; caller overwrites via its own per-row callback.
	default: // DrawPGZ1BG
		for y := 0; y < viewHeight; y++ {
			lines[y] = TileScanLine{
				SrcX: toFixed(scrollX), SrcY: toFixed(scrollY + float64(y)),
				DeltaX: 1 << 16, DeltaY: 0, Opacity: opacity,
			}
		}
	}
	return lines
}

// DrawTileScanLine renders one scanline of grid through scan into dst's
// row y. This is a condensed per-pixel loop rather than the source's
// three-phase leading-partial-tile / 16-pixel-unrolled-run / trailing-
// partial-tile structure: that split amortizes a bounds check the C inner
// loop would otherwise pay per pixel, but Go's slice access is already
// bounds-checked at that granularity, so the unroll buys nothing here.
func DrawTileScanLine(dst *Target, y int, scan TileScanLine, grid TileGrid, sampler func(id, px, py int) color.RGBA, pixelFn PixelFunc, viewWidth int) {
	width, height, tileSize := grid.Dimensions()
	layerWidthPx := width * tileSize
	layerHeightPx := height * tileSize
	srcX, srcY := scan.SrcX, scan.SrcY

	for x := 0; x < viewWidth; x++ {
		sx := int(srcX >> 16)
		sy := int(srcY >> 16)
		if layerWidthPx > 0 {
			sx = ((sx % layerWidthPx) + layerWidthPx) % layerWidthPx
		}
		if layerHeightPx > 0 {
			sy = ((sy % layerHeightPx) + layerHeightPx) % layerHeightPx
		}
		if tileSize > 0 {
			tx, ty := sx/tileSize, sy/tileSize
			id, flipX, flipY := grid.TileAt(tx, ty)
			if id >= 0 {
				lx, ly := sx%tileSize, sy%tileSize
				if flipX {
					lx = tileSize - 1 - lx
				}
				if flipY {
					ly = tileSize - 1 - ly
				}
				c := sampler(id, lx, ly)
				if c.A > 0 {
					pixelFn(dst, x, y, c)
				}
			}
		}
		srcX += scan.DeltaX
		srcY += scan.DeltaY
	}
}
