package tilecollision

import "testing"

func flatTopConfig(height uint8) *TileConfig {
	tc := &TileConfig{}
	for i := range tc.CollisionTop {
		tc.CollisionTop[i] = height
		tc.CollisionBottom[i] = 15
	}
	return tc
}

func TestDeriveFlipVariantsRoundTrip(t *testing.T) {
	base := flatTopConfig(8)
	base.CollisionTop[3] = 2
	variants := DeriveFlipVariants(base)

	for i := 0; i < TileWidth; i++ {
		want := base.CollisionTop[TileWidth-1-i]
		got := variants[1].CollisionTop[i]
		if got != want {
			t.Fatalf("flip-X CollisionTop[%d] = %d, want %d", i, got, want)
		}
	}
}

func oneTileWorld(tc TileConfig, plane int) *World {
	layer := &Layer{
		Tiles:       []Tile{Tile(1) | (1 << 28)}, // id=1, collision plane A bit 0 set
		Width:       1,
		Height:      1,
		WidthInBits: 0,
		Collideable: true,
	}
	cfg := make([]TileConfig, 4)
	cfg[1] = tc
	return &World{
		Layers:    []*Layer{layer},
		TileCfg:   [][]TileConfig{cfg},
		TileCount: 1,
	}
}

func TestCollisionAtFlatTopTile(t *testing.T) {
	tc := flatTopConfig(8)
	tc.AngleTop = 0x00
	w := oneTileWorld(*tc, 0)

	angle := w.CollisionAt(7, 8, 0, SideTop)
	if angle != 0x00 {
		t.Fatalf("CollisionAt = %d, want 0x00", angle)
	}
}

func TestCollisionInLineDownwardSensor(t *testing.T) {
	tc := flatTopConfig(8)
	tc.AngleTop = 0x00
	w := oneTileWorld(*tc, 0)

	var sensor Sensor
	angle := w.CollisionInLine(7, -4, 0, 32, 0, false, &sensor)
	if !sensor.Collided {
		t.Fatal("expected a hit")
	}
	if sensor.Y != 8 {
		t.Fatalf("sensor.Y = %d, want 8", sensor.Y)
	}
	if angle != 0x00 {
		t.Fatalf("angle = %d, want 0x00", angle)
	}
}

func TestCheckTileCollisionSnapsToFloor(t *testing.T) {
	tc := flatTopConfig(8)
	w := oneTileWorld(*tc, 0)

	entity := &Entity{X: 7, Y: 10}
	hit := CheckTileCollision(w, entity, 1, ModeFloor, 0, 0, 0, true)
	if !hit {
		t.Fatal("expected a collision")
	}
	if entity.Y != 8 {
		t.Fatalf("entity.Y = %v, want 8", entity.Y)
	}
}

func TestCheckTileGripRespectsTolerance(t *testing.T) {
	tc := flatTopConfig(8)
	w := oneTileWorld(*tc, 0)

	entity := &Entity{X: 7, Y: 40}
	if CheckTileGrip(w, entity, 1, ModeFloor, 0, 0, 0, 4) {
		t.Fatal("expected no grip: surface is far outside tolerance")
	}

	entity.Y = 9
	if !CheckTileGrip(w, entity, 1, ModeFloor, 0, 0, 0, 4) {
		t.Fatal("expected a grip within tolerance")
	}
}
