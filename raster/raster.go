// Package raster is the Software Rasterizer Core: the per-pixel blend/
// tint/stencil/dot-mask state machine, the tile scanline renderer, and the
// polygon rasterizer a scene view's Render pass draws through. Grounded on
// original_source/source/Engine/Rendering/Software/SoftwareRenderer.cpp —
// function and field names (BlendMode, TintMode, StencilOp, DotMask,
// TileScanLine) kept, C function-pointer tables replaced with a single Go
// closure over the draw call's state that checks each setting per pixel.
package raster

import "image/color"

// BlendMode selects the source/dest blend equation a pixel write uses.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendSubtract
	BlendMatchEqual
	BlendMatchNotEqual
)

// TintMode selects how a non-filter-table tint color combines with the
// source/dest pixel.
type TintMode int

const (
	TintNormalSource TintMode = iota
	TintNormalDest
	TintBlendSource
	TintBlendDest
)

// StencilTest is the comparison a stencil-gated write runs against the
// stencil buffer's current value before the write op applies.
type StencilTest int

const (
	StencilNever StencilTest = iota
	StencilAlways
	StencilEqual
	StencilNotEqual
	StencilLess
	StencilGreater
	StencilLEqual
	StencilGEqual
)

// StencilOp is the write applied to the stencil buffer on pass/fail.
type StencilOp int

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilIncr
	StencilDecr
	StencilInvert
	StencilReplace
	StencilIncrWrap
	StencilDecrWrap
)

func applyStencilOp(op StencilOp, cur uint8, ref uint8) uint8 {
	switch op {
	case StencilZero:
		return 0
	case StencilIncr:
		if cur == 255 {
			return 255
		}
		return cur + 1
	case StencilDecr:
		if cur == 0 {
			return 0
		}
		return cur - 1
	case StencilInvert:
		return ^cur
	case StencilReplace:
		return ref
	case StencilIncrWrap:
		return cur + 1
	case StencilDecrWrap:
		return cur - 1
	default: // StencilKeep
		return cur
	}
}

func testStencil(test StencilTest, cur, ref uint8) bool {
	switch test {
	case StencilNever:
		return false
	case StencilAlways:
		return true
	case StencilEqual:
		return cur == ref
	case StencilNotEqual:
		return cur != ref
	case StencilLess:
		return ref < cur
	case StencilGreater:
		return ref > cur
	case StencilLEqual:
		return ref <= cur
	case StencilGEqual:
		return ref >= cur
	default:
		return false
	}
}

// DotMask gates pixel writes by horizontal/vertical bit patterns, each with
// an independent scroll offset (CRT dot-matrix style masking).
type DotMask struct {
	H, V           uint8
	OffsetH, OffsetV int
}

func (d DotMask) passes(x, y int) bool {
	if d.H == 0 && d.V == 0 {
		return true
	}
	hx := uint8(x+d.OffsetH) & d.H
	vy := uint8(y+d.OffsetV) & d.V
	return hx == 0 && vy == 0
}

// PixelState bundles the per-draw-call settings that together select which
// blend/tint/stencil/dot-mask path a pixel write takes, mirroring
// SoftwareRenderer's CurrentBlendState plus the separately tracked stencil
// and dot-mask globals.
type PixelState struct {
	Blend   BlendMode
	Tint    TintMode
	TintColor color.RGBA
	FilterTable *FilterTable

	Stencil        bool
	StencilBuffer  []uint8
	StencilWidth   int
	StencilTest    StencilTest
	StencilRef     uint8
	StencilOnPass  StencilOp
	StencilOnFail  StencilOp

	DotMask DotMask
}

// PixelFunc writes one source pixel into dst at (x,y), applying the state's
// blend/tint/stencil/dot-mask chain. ResolvePixelFunc builds it once per
// draw call, but the closure still tests the dot mask, stencil, filter/tint
// and blend mode on every pixel it writes.
type PixelFunc func(dst *Target, x, y int, src color.RGBA)

// Target is the minimal framebuffer raster draws into; callers adapt their
// own backing store (an *ebiten.Image, a raw []uint32, etc.) to this shape.
type Target struct {
	Pix    []color.RGBA
	Width  int
	Height int
}

// NewTarget wraps a caller-owned pixel slice as a raster draw target.
func NewTarget(pix []color.RGBA, width, height int) *Target {
	return &Target{Pix: pix, Width: width, Height: height}
}

func (img *Target) at(x, y int) color.RGBA  { return img.Pix[y*img.Width+x] }
func (img *Target) set(x, y int, c color.RGBA) { img.Pix[y*img.Width+x] = c }

// ResolvePixelFunc builds the PixelFunc for the given state, the Go
// equivalent of indexing SoftwareRenderer's per-pixel function-pointer
// table by (blend_mode, tint_enabled, dot_mask, stencil_enabled).
func ResolvePixelFunc(state PixelState) PixelFunc {
	return func(dst *Target, x, y int, src color.RGBA) {
		if !state.DotMask.passes(x, y) {
			return
		}
		if state.Stencil {
			idx := y*state.StencilWidth + x
			cur := state.StencilBuffer[idx]
			pass := testStencil(state.StencilTest, cur, state.StencilRef)
			if pass {
				state.StencilBuffer[idx] = applyStencilOp(state.StencilOnPass, cur, state.StencilRef)
			} else {
				state.StencilBuffer[idx] = applyStencilOp(state.StencilOnFail, cur, state.StencilRef)
				return
			}
		}
		if state.FilterTable != nil {
			src = state.FilterTable.Lookup(src)
		} else {
			src = applyTint(state.Tint, state.TintColor, src)
		}
		dstColor := dst.at(x, y)
		dst.set(x, y, blend(state.Blend, dstColor, src))
	}
}

func applyTint(mode TintMode, tint, src color.RGBA) color.RGBA {
	switch mode {
	case TintNormalSource:
		return src
	case TintNormalDest:
		return tint
	case TintBlendSource:
		return blend(BlendNormal, src, tint)
	case TintBlendDest:
		return blend(BlendNormal, tint, src)
	default:
		return src
	}
}

func blend(mode BlendMode, dst, src color.RGBA) color.RGBA {
	switch mode {
	case BlendAdd:
		return color.RGBA{
			R: clampAdd(dst.R, src.R),
			G: clampAdd(dst.G, src.G),
			B: clampAdd(dst.B, src.B),
			A: 255,
		}
	case BlendSubtract:
		return color.RGBA{
			R: clampSub(dst.R, src.R),
			G: clampSub(dst.G, src.G),
			B: clampSub(dst.B, src.B),
			A: 255,
		}
	case BlendMatchEqual:
		if src == dst {
			return src
		}
		return dst
	case BlendMatchNotEqual:
		if src != dst {
			return src
		}
		return dst
	default: // BlendNormal: SRC_ALPHA, 1-SRC_ALPHA
		a := uint32(src.A)
		inv := 255 - a
		return color.RGBA{
			R: uint8((uint32(src.R)*a + uint32(dst.R)*inv) / 255),
			G: uint8((uint32(src.G)*a + uint32(dst.G)*inv) / 255),
			B: uint8((uint32(src.B)*a + uint32(dst.B)*inv) / 255),
			A: 255,
		}
	}
}

func clampAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func clampSub(a, b uint8) uint8 {
	if int(a)-int(b) < 0 {
		return 0
	}
	return a - b
}
