package scene

import "github.com/hatchlang/hatch/tilecollision"

// LayerFlags mirrors the bit flags SceneLayer carries in the original
// engine (collideable, visible, parallax mode selection).
type LayerFlags int

const (
	FlagCollideable LayerFlags = 1 << iota
	FlagVisible
)

// DrawBehavior selects how Layer's scanlines are produced by the
// rasterizer (component G); stored here since it's a layer-level setting.
type DrawBehavior int

const (
	DrawPGZ1BG DrawBehavior = iota
	DrawHorizontalParallax
	DrawVerticalParallax
	DrawCustomTileScanLines
)

// Layer owns a width×height grid of packed tiles plus the parallax/blend
// metadata the rasterizer's tile scanline renderer consumes. ToCollisionLayer
// hands out a tilecollision.Layer view sharing the same Tiles slice, so
// collision queries and rendering always see the same data without a sync step.
type Layer struct {
	Name   string
	Width  int
	Height int
	Tiles  []tilecollision.Tile

	OffsetX, OffsetY int
	Flags            LayerFlags
	DrawGroupIndex   int
	BlendMode        int
	Opacity          float64
	Behavior         DrawBehavior

	// backup is a load-time snapshot of Tiles, restored by Restart.
	backup []tilecollision.Tile

	widthInBits int
}

func NewLayer(name string, width, height int) *Layer {
	l := &Layer{
		Name:   name,
		Width:  width,
		Height: height,
		Tiles:  make([]tilecollision.Tile, width*height),
		Flags:  FlagVisible,
	}
	for bits := 0; (1 << bits) < width; bits++ {
		l.widthInBits = bits + 1
	}
	return l
}

// Snapshot records the current tile grid so a later Restart can revert it
// (spec.md §4.5: "a backup of each layer's tiles is kept at load time").
func (l *Layer) Snapshot() {
	l.backup = append([]tilecollision.Tile(nil), l.Tiles...)
}

// Restart reverts Tiles to the last Snapshot, if one was taken.
func (l *Layer) Restart() {
	if l.backup != nil {
		copy(l.Tiles, l.backup)
	}
}

// SetTile packs (id, flipX, flipY, collA, collB) into the tile at (x,y),
// matching spec.md §4.5's SetTile bit layout.
func (l *Layer) SetTile(x, y, id int, flipX, flipY bool, collA, collB int) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return
	}
	v := uint32(id) & 0x0FFF
	if flipX {
		v |= 0x1000
	}
	if flipY {
		v |= 0x2000
	}
	v |= uint32(collA&0xF) << 28
	v |= uint32(collB&0x3) << 26
	l.Tiles[x+y*l.Width] = tilecollision.Tile(v)
}

// ToCollisionLayer adapts this layer into the minimal view
// tilecollision.World needs.
func (l *Layer) ToCollisionLayer() *tilecollision.Layer {
	return &tilecollision.Layer{
		Tiles:       l.Tiles,
		Width:       l.Width,
		Height:      l.Height,
		WidthInBits: l.widthInBits,
		OffsetX:     l.OffsetX,
		OffsetY:     l.OffsetY,
		Collideable: l.Flags&FlagCollideable != 0,
	}
}

// Tileset names the sprite sheet and starting tile index a contiguous run
// of tile ids maps to, plus the animators that drive any animated tiles in
// that run.
type Tileset struct {
	Name      string
	StartTile int
	Animators []*TileAnimator
}

// TileAnimator advances an animated tile's displayed frame over time,
// rewriting the affected layer cells each time it ticks.
type TileAnimator struct {
	Paused      bool
	FrameIndex  int
	FrameCount  int
	FrameTicks  int
	ticksLeft   int
	Frames      []int // tile ids shown in sequence
	TargetLayer *Layer
	TargetX     []int
	TargetY     []int
}

// Advance ticks the animator by one FixedUpdate step, rewriting the
// target layer's tile cells when a frame boundary is crossed.
func (a *TileAnimator) Advance() {
	if a.Paused || len(a.Frames) == 0 {
		return
	}
	a.ticksLeft--
	if a.ticksLeft > 0 {
		return
	}
	a.ticksLeft = a.FrameTicks
	a.FrameIndex = (a.FrameIndex + 1) % len(a.Frames)
	id := a.Frames[a.FrameIndex]
	if a.TargetLayer == nil {
		return
	}
	for i := range a.TargetX {
		existing := a.TargetLayer.Tiles[a.TargetX[i]+a.TargetY[i]*a.TargetLayer.Width]
		flipX := existing&0x1000 != 0
		flipY := existing&0x2000 != 0
		collA := int(existing&0xF0000000) >> 28
		collB := int(existing&0x0C000000) >> 26
		a.TargetLayer.SetTile(a.TargetX[i], a.TargetY[i], id, flipX, flipY, collA, collB)
	}
}
