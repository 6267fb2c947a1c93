package raster

import (
	"image/color"
	"testing"
)

func TestBlendNormalMixesByAlpha(t *testing.T) {
	dst := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	src := color.RGBA{R: 255, G: 255, B: 255, A: 128}
	got := blend(BlendNormal, dst, src)
	if got.R < 120 || got.R > 135 {
		t.Fatalf("half-alpha blend R = %d, want ~127", got.R)
	}
}

func TestBlendAddClamps(t *testing.T) {
	dst := color.RGBA{R: 200, G: 10, B: 0, A: 255}
	src := color.RGBA{R: 100, G: 10, B: 0, A: 255}
	got := blend(BlendAdd, dst, src)
	if got.R != 255 {
		t.Fatalf("R = %d, want clamped to 255", got.R)
	}
	if got.G != 20 {
		t.Fatalf("G = %d, want 20", got.G)
	}
}

func TestDotMaskGatesWrites(t *testing.T) {
	d := DotMask{H: 1, V: 0}
	if !d.passes(0, 0) {
		t.Fatal("expected (0,0) to pass a horizontal dot mask of 1")
	}
	if d.passes(1, 0) {
		t.Fatal("expected (1,0) to be gated out by a horizontal dot mask of 1")
	}
}

func TestStencilReplaceOnPassKeepOnFail(t *testing.T) {
	buf := []uint8{0, 0, 0, 0}
	state := PixelState{
		Blend:         BlendNormal,
		Stencil:       true,
		StencilBuffer: buf,
		StencilWidth:  2,
		StencilTest:   StencilAlways,
		StencilRef:    7,
		StencilOnPass: StencilReplace,
		StencilOnFail: StencilKeep,
	}
	fn := ResolvePixelFunc(state)
	dst := NewTarget(make([]color.RGBA, 4), 2, 2)
	fn(dst, 0, 0, color.RGBA{R: 255, A: 255})

	if buf[0] != 7 {
		t.Fatalf("stencil buffer[0] = %d, want 7 after a passing write", buf[0])
	}
	if dst.at(0, 0).R != 255 {
		t.Fatal("passing stencil test should still perform the color write")
	}
}

func TestStencilNeverBlocksWrite(t *testing.T) {
	buf := []uint8{3}
	state := PixelState{
		Stencil:       true,
		StencilBuffer: buf,
		StencilWidth:  1,
		StencilTest:   StencilNever,
		StencilOnFail: StencilZero,
	}
	fn := ResolvePixelFunc(state)
	dst := NewTarget([]color.RGBA{{R: 9, A: 255}}, 1, 1)
	fn(dst, 0, 0, color.RGBA{R: 255, A: 255})

	if dst.at(0, 0).R != 9 {
		t.Fatal("StencilNever should have blocked the color write")
	}
	if buf[0] != 0 {
		t.Fatalf("stencil buffer = %d, want 0 (StencilOnFail=Zero)", buf[0])
	}
}

func TestFilterTableBlackAndWhiteDesaturates(t *testing.T) {
	ft := BuildFilterTable(FilterBlackAndWhite)
	red := ft.Lookup(color.RGBA{R: 255, G: 0, B: 0, A: 255})
	if red.R != red.G || red.G != red.B {
		t.Fatalf("grayscale filter entry not desaturated: %+v", red)
	}
}

func TestFilterTableInvertFlipsChannels(t *testing.T) {
	ft := BuildFilterTable(FilterInvert)
	black := ft.Lookup(color.RGBA{R: 0, G: 0, B: 0, A: 255})
	if black.R < 200 {
		t.Fatalf("inverted black R = %d, want near 255", black.R)
	}
}

func TestBuildFogTableLinearIsMonotonic(t *testing.T) {
	table := BuildFogTable(FogLinear, 1)
	for i := 1; i < 256; i++ {
		if table[i] < table[i-1] {
			t.Fatalf("fog table not monotonic at %d: %v -> %v", i, table[i-1], table[i])
		}
	}
	if table[0] != 0 {
		t.Fatalf("table[0] = %v, want 0", table[0])
	}
	if table[255] < 0.99 {
		t.Fatalf("table[255] = %v, want ~1", table[255])
	}
}

func TestBuildScanLinesHorizontalParallaxAppliesRowDeform(t *testing.T) {
	lines := BuildScanLines(DrawHorizontalParallax, 4, 10, 0, []float64{0, 5, 0, -5}, 1)
	if len(lines) != 4 {
		t.Fatalf("len(lines) = %d, want 4", len(lines))
	}
	if lines[1].SrcX != toFixed(15) {
		t.Fatalf("row 1 SrcX = %d, want toFixed(15)", lines[1].SrcX)
	}
	if lines[3].SrcX != toFixed(5) {
		t.Fatalf("row 3 SrcX = %d, want toFixed(5)", lines[3].SrcX)
	}
}

type fakeGrid struct {
	width, height, tileSize int
	id                      int
}

func (g fakeGrid) Dimensions() (int, int, int) { return g.width, g.height, g.tileSize }
func (g fakeGrid) TileAt(tx, ty int) (int, bool, bool) { return g.id, false, false }

func TestDrawTileScanLineWrapsSource(t *testing.T) {
	grid := fakeGrid{width: 2, height: 2, tileSize: 16, id: 1}
	scan := TileScanLine{SrcX: toFixed(-1), SrcY: 0, DeltaX: 1 << 16, DeltaY: 0}
	dst := NewTarget(make([]color.RGBA, 4), 4, 1)
	called := false
	sampler := func(id, px, py int) color.RGBA {
		called = true
		return color.RGBA{R: 1, A: 255}
	}
	fn := ResolvePixelFunc(PixelState{Blend: BlendNormal})
	DrawTileScanLine(dst, 0, scan, grid, sampler, fn, 4)
	if !called {
		t.Fatal("sampler never invoked for a wrapped-negative source position")
	}
}

func TestDrawPolygonFillsInteriorPixel(t *testing.T) {
	dst := NewTarget(make([]color.RGBA, 100*100), 100, 100)
	verts := []Vertex{
		{X: 10, Y: 10, Z: 0, W: 1, Color: color.RGBA{R: 255, A: 255}},
		{X: 90, Y: 10, Z: 0, W: 1, Color: color.RGBA{R: 255, A: 255}},
		{X: 50, Y: 90, Z: 0, W: 1, Color: color.RGBA{R: 255, A: 255}},
	}
	sampler := func(u, v float64) color.RGBA { return color.RGBA{R: 255, G: 255, B: 255, A: 255} }
	fn := ResolvePixelFunc(PixelState{Blend: BlendNormal})
	DrawPolygon(dst, verts, sampler, nil, FogSettings{}, fn)

	center := dst.at(50, 50)
	if center.R == 0 {
		t.Fatal("triangle interior pixel was not drawn")
	}
	corner := dst.at(0, 0)
	if corner.R != 0 {
		t.Fatal("pixel outside the triangle should be untouched")
	}
}
