package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// FilterKind selects which of the engine's built-in 15-bit filter tables
// BuildFilterTable produces, mirroring SoftwareRenderer's FilterCurrent/
// FilterBlackAndWhite/FilterInvert tables.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterBlackAndWhite
	FilterInvert
)

// FilterTable is a precomputed 15-bit-indexed (RGB555) colour lookup, built
// once at startup by running the full 32768-entry palette through bild's
// colour-space transforms instead of hand-rolled per-channel RGB555 math —
// the table itself still indexes the same way the source's
// GET_FILTER_COLOR macro does.
type FilterTable struct {
	entries [1 << 15]color.RGBA
}

// BuildFilterTable renders the entire RGB555 palette as a 32768x1 image,
// runs it through the requested bild effect, and bakes the result into a
// direct-indexed lookup table.
func BuildFilterTable(kind FilterKind) *FilterTable {
	const size = 1 << 15
	src := image.NewRGBA(image.Rect(0, 0, size, 1))
	for i := 0; i < size; i++ {
		r, g, b := rgb555Components(i)
		src.Set(i, 0, color.RGBA{R: r, G: g, B: b, A: 255})
	}

	var out image.Image = src
	switch kind {
	case FilterBlackAndWhite:
		out = effect.Grayscale(src)
	case FilterInvert:
		out = effect.Invert(src)
	}

	ft := &FilterTable{}
	for i := 0; i < size; i++ {
		r, g, b, a := out.At(i, 0).RGBA()
		ft.entries[i] = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	}
	return ft
}

func rgb555Components(idx int) (r, g, b uint8) {
	r5 := (idx >> 10) & 0x1F
	g5 := (idx >> 5) & 0x1F
	b5 := idx & 0x1F
	return uint8(r5 << 3), uint8(g5 << 3), uint8(b5 << 3)
}

// Lookup quantizes c to its RGB555 index and returns the table's entry,
// the Go equivalent of SoftwareRenderer's GET_FILTER_COLOR(*src) macro.
func (ft *FilterTable) Lookup(c color.RGBA) color.RGBA {
	r5 := int(c.R) >> 3
	g5 := int(c.G) >> 3
	b5 := int(c.B) >> 3
	idx := (r5 << 10) | (g5 << 5) | b5
	return ft.entries[idx]
}
