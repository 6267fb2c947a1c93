package scene

import "testing"

func TestLayerSetTilePacksBits(t *testing.T) {
	l := NewLayer("fg", 4, 4)
	l.SetTile(1, 2, 0x123, true, false, 0xA, 0x2)

	tile := l.Tiles[1+2*4]
	if tile.ID() != 0x123 {
		t.Fatalf("ID() = %#x, want %#x", tile.ID(), 0x123)
	}
	if !tile.FlipX() || tile.FlipY() {
		t.Fatalf("flip bits wrong: flipX=%v flipY=%v", tile.FlipX(), tile.FlipY())
	}
	if tile.CollisionA() != 0xA || tile.CollisionB() != 0x2 {
		t.Fatalf("collision bits wrong: A=%#x B=%#x", tile.CollisionA(), tile.CollisionB())
	}
}

func TestLayerSnapshotRestart(t *testing.T) {
	l := NewLayer("fg", 2, 2)
	l.SetTile(0, 0, 5, false, false, 0, 0)
	l.Snapshot()
	l.SetTile(0, 0, 9, false, false, 0, 0)

	if l.Tiles[0].ID() != 9 {
		t.Fatalf("expected mutated tile before restart, got id %d", l.Tiles[0].ID())
	}
	l.Restart()
	if l.Tiles[0].ID() != 5 {
		t.Fatalf("Restart() did not revert to snapshot, got id %d", l.Tiles[0].ID())
	}
}

func TestTileAnimatorAdvancePreservesFlipAndCollisionBits(t *testing.T) {
	l := NewLayer("fg", 2, 2)
	l.SetTile(0, 0, 1, true, true, 0x3, 0x1)

	anim := &TileAnimator{
		FrameCount:  2,
		FrameTicks:  1,
		Frames:      []int{1, 2},
		TargetLayer: l,
		TargetX:     []int{0},
		TargetY:     []int{0},
	}

	anim.Advance()

	tile := l.Tiles[0]
	if tile.ID() != 2 {
		t.Fatalf("Advance() did not roll to next frame id, got %d", tile.ID())
	}
	if !tile.FlipX() || !tile.FlipY() {
		t.Fatal("Advance() lost flip bits when rewriting the animated cell")
	}
	if tile.CollisionA() != 0x3 || tile.CollisionB() != 0x1 {
		t.Fatal("Advance() lost collision bits when rewriting the animated cell")
	}
}

func TestTileAnimatorPausedDoesNotAdvance(t *testing.T) {
	l := NewLayer("fg", 1, 1)
	l.SetTile(0, 0, 1, false, false, 0, 0)
	anim := &TileAnimator{
		Paused:      true,
		FrameTicks:  1,
		Frames:      []int{1, 2},
		TargetLayer: l,
		TargetX:     []int{0},
		TargetY:     []int{0},
	}
	anim.Advance()
	if l.Tiles[0].ID() != 1 {
		t.Fatal("paused animator advanced its target tile")
	}
}
