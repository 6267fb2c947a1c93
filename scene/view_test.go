package scene

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestViewScrollToZeroDurationSnapsImmediately(t *testing.T) {
	v := NewView("main", 320, 240)
	v.ScrollTo(100, 50, 2, 0, ease.Linear)
	if v.X != 100 || v.Y != 50 || v.ScaleX != 2 || v.ScaleY != 2 {
		t.Fatalf("zero-duration ScrollTo did not snap immediately: %+v", v)
	}
	if v.tween != nil {
		t.Fatal("zero-duration ScrollTo left a tween in flight")
	}
}

func TestViewScrollToCompletesAfterDuration(t *testing.T) {
	v := NewView("main", 320, 240)
	v.ScrollTo(100, 0, 1, 1, ease.Linear)
	if v.tween == nil {
		t.Fatal("ScrollTo with positive duration did not start a tween")
	}
	v.advanceTween(0.5)
	if v.X <= 0 || v.X >= 100 {
		t.Fatalf("midpoint X = %v, want strictly between 0 and 100", v.X)
	}
	v.advanceTween(0.5)
	if v.X != 100 {
		t.Fatalf("X after full duration = %v, want 100", v.X)
	}
	if v.tween != nil {
		t.Fatal("tween should clear once all three axes finish")
	}
}

func TestViewBoundsScalesWithScaleFactor(t *testing.T) {
	v := NewView("main", 200, 100)
	v.X, v.Y = 10, 20
	v.ScaleX, v.ScaleY = 2, 2
	b := v.Bounds()
	if b.Width != 100 || b.Height != 50 {
		t.Fatalf("Bounds() = %+v, want width 100 height 50", b)
	}
}
