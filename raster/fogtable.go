package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
)

// FogKind selects the falloff curve BuildFogTable bakes into its
// smoothness table, per spec.md §4.7's "linear or exponential" fog modes.
type FogKind int

const (
	FogLinear FogKind = iota
	FogExponential
)

// BuildFogTable precomputes the 256-entry smoothness table polygon fog
// evaluation indexes by depth quantized to a byte, built the same way
// bild's adjust.Gamma bakes a tone curve into a lookup table from a gray
// ramp rather than recomputing a curve per pixel. gamma is only consulted
// for FogExponential; FogLinear bakes the identity curve.
func BuildFogTable(kind FogKind, gamma float64) [256]float32 {
	ramp := image.NewGray(image.Rect(0, 0, 256, 1))
	for i := 0; i < 256; i++ {
		ramp.SetGray(i, 0, color.Gray{Y: uint8(i)})
	}

	g := 1.0
	if kind == FogExponential {
		g = gamma
	}
	curved := adjust.Gamma(ramp, g)

	var table [256]float32
	for i := 0; i < 256; i++ {
		y, _, _, _ := curved.At(i, 0).RGBA()
		table[i] = float32(y) / 65535
	}
	return table
}
