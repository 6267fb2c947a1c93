package raster

import "image/color"

// Vertex is one polygon corner: screen-space position plus the
// perspective-correct interpolation inputs (W, UV, Gouraud color).
type Vertex struct {
	X, Y, Z float64
	W       float64 // homogeneous divisor; 1 for affine-only mapping
	U, V    float64
	Color   color.RGBA
}

// FogSettings configures the optional fog blend a polygon draw applies,
// evaluated through a precomputed BuildFogTable smoothness table rather
// than per-pixel curve math.
type FogSettings struct {
	Enabled   bool
	Table     *[256]float32
	Color     color.RGBA
	Near, Far float64
}

// DepthBuffer is an optional per-pixel depth test/write target; a nil
// *DepthBuffer disables depth testing entirely.
type DepthBuffer struct {
	Values []float64
	Width  int
}

func (d *DepthBuffer) test(x, y int, z float64) bool {
	if d == nil {
		return true
	}
	idx := y*d.Width + x
	if z < d.Values[idx] {
		d.Values[idx] = z
		return true
	}
	return false
}

// DrawPolygon rasterizes a convex vertex fan, fan-decomposed to triangles
// the way the backend does per spec.md §4.7, sampling texel color via
// sampler, Gouraud-blending vertex colors, and dividing UVs by the
// interpolated 1/W when any vertex's W != 1 for perspective correction.
func DrawPolygon(dst *Target, verts []Vertex, sampler func(u, v float64) color.RGBA, depth *DepthBuffer, fog FogSettings, pixelFn PixelFunc) {
	if len(verts) < 3 {
		return
	}
	for i := 1; i < len(verts)-1; i++ {
		drawTriangle(dst, verts[0], verts[i], verts[i+1], sampler, depth, fog, pixelFn)
	}
}

func drawTriangle(dst *Target, a, b, c Vertex, sampler func(u, v float64) color.RGBA, depth *DepthBuffer, fog FogSettings, pixelFn PixelFunc) {
	minX, maxX := clampRange(minOf3(a.X, b.X, c.X), maxOf3(a.X, b.X, c.X), dst.Width)
	minY, maxY := clampRange(minOf3(a.Y, b.Y, c.Y), maxOf3(a.Y, b.Y, c.Y), dst.Height)

	area := edge(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if area == 0 {
		return
	}

	invWA, invWB, invWC := 1/a.W, 1/b.W, 1/c.W

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0 := edge(b.X, b.Y, c.X, c.Y, px, py) / area
			w1 := edge(c.X, c.Y, a.X, a.Y, px, py) / area
			w2 := edge(a.X, a.Y, b.X, b.Y, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			if !depth.test(x, y, z) {
				continue
			}

			invW := w0*invWA + w1*invWB + w2*invWC
			u := (w0*a.U*invWA + w1*b.U*invWB + w2*c.U*invWC) / invW
			v := (w0*a.V*invWA + w1*b.V*invWB + w2*c.V*invWC) / invW

			texel := sampler(u, v)
			gouraud := color.RGBA{
				R: lerp3(a.Color.R, b.Color.R, c.Color.R, w0, w1, w2),
				G: lerp3(a.Color.G, b.Color.G, c.Color.G, w0, w1, w2),
				B: lerp3(a.Color.B, b.Color.B, c.Color.B, w0, w1, w2),
				A: texel.A,
			}
			result := modulate(texel, gouraud)
			if fog.Enabled {
				result = applyFog(result, fog, z)
			}
			pixelFn(dst, x, y, result)
		}
	}
}

func clampRange(lo, hi float64, size int) (int, int) {
	l, h := int(lo), int(hi)
	if l < 0 {
		l = 0
	}
	if h >= size {
		h = size - 1
	}
	return l, h
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func lerp3(a, b, c uint8, wa, wb, wc float64) uint8 {
	v := float64(a)*wa + float64(b)*wb + float64(c)*wc
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func modulate(texel, material color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint32(texel.R) * uint32(material.R) / 255),
		G: uint8(uint32(texel.G) * uint32(material.G) / 255),
		B: uint8(uint32(texel.B) * uint32(material.B) / 255),
		A: texel.A,
	}
}

func applyFog(c color.RGBA, fog FogSettings, z float64) color.RGBA {
	t := (z - fog.Near) / (fog.Far - fog.Near)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	amount := fog.Table[int(t*255)]
	inv := 1 - amount
	return color.RGBA{
		R: uint8(float32(c.R)*inv + float32(fog.Color.R)*amount),
		G: uint8(float32(c.G)*inv + float32(fog.Color.G)*amount),
		B: uint8(float32(c.B)*inv + float32(fog.Color.B)*amount),
		A: c.A,
	}
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
