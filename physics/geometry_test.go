package physics

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDot(t *testing.T) {
	if got := Dot(Vec{1, 2}, Vec{3, 4}); got != 11 {
		t.Fatalf("Dot = %v, want 11", got)
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(Vec{0, 0}, Vec{2, 2}, Vec{0, 2}, Vec{2, 0})
	if !ok {
		t.Fatal("expected crossing lines to intersect")
	}
	if !near(p.X, 1) || !near(p.Y, 1) {
		t.Errorf("intersection = %+v, want (1,1)", p)
	}

	// 直线而非线段：交点可以落在两段之外
	p, ok = SegmentIntersection(Vec{0, 0}, Vec{1, 0}, Vec{5, -1}, Vec{5, 1})
	if !ok || !near(p.X, 5) || !near(p.Y, 0) {
		t.Errorf("extended intersection = %+v ok=%v, want (5,0)", p, ok)
	}

	if _, ok := SegmentIntersection(Vec{0, 0}, Vec{1, 1}, Vec{0, 1}, Vec{1, 2}); ok {
		t.Error("parallel lines must not intersect")
	}

	// 近乎平行但行列式不为 0 时照常返回交点
	if _, ok := SegmentIntersection(Vec{0, 0}, Vec{1, 1e-12}, Vec{0, 1}, Vec{1, 1}); !ok {
		t.Error("near-parallel lines should still report an intersection")
	}
}

func TestBetween(t *testing.T) {
	a, b := Vec{0, 0}, Vec{10, 0}
	if !Between(Vec{5, 0}, a, b) {
		t.Error("midpoint should be between")
	}
	if !Between(Vec{5, 0}, b, a) {
		t.Error("endpoint order must not matter")
	}
	if !Between(Vec{10 + 1e-7, 1e-7}, a, b) {
		t.Error("tolerance should absorb rounding error")
	}
	if Between(Vec{10.01, 0}, a, b) {
		t.Error("point past the end should not be between")
	}
}

func TestDirectionalRatio(t *testing.T) {
	if got := DirectionalRatio(Vec{6, 3}, Vec{2, 1}); got != 3 {
		t.Errorf("x ratio = %v, want 3", got)
	}
	// v2.X 接近 0 时使用 y
	if got := DirectionalRatio(Vec{0.5, -8}, Vec{1e-9, -2}); got != 4 {
		t.Errorf("y ratio = %v, want 4", got)
	}
	if got := DirectionalRatio(Vec{-2, 0}, Vec{1, 0}); got >= 0 {
		t.Errorf("opposite direction ratio = %v, want negative", got)
	}
}

func TestWithinSpeedBound(t *testing.T) {
	cases := []struct {
		v    Vec
		want bool
	}{
		{Vec{0, 0}, true},
		{Vec{4, -4}, true},
		{Vec{4 + 1e-9, 0}, true},
		{Vec{4.1, 0}, false},
		{Vec{0, -5}, false},
	}
	for _, c := range cases {
		if got := WithinSpeedBound(c.v, 4); got != c.want {
			t.Errorf("WithinSpeedBound(%+v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestPolygonContains(t *testing.T) {
	sq := Polygon{{0, 0}, {0, 8}, {8, 8}, {8, 0}}
	if !sq.Contains(Vec{4, 4}) {
		t.Error("center should be inside")
	}
	if sq.Contains(Vec{8, 4}) {
		t.Error("point on edge is not strictly inside")
	}
	if sq.Contains(Vec{8 - 1e-9, 4}) {
		t.Error("point within Epsilon of edge is not inside")
	}
	if sq.Contains(Vec{9, 4}) {
		t.Error("outside point reported inside")
	}
	// 反向环绕同样成立
	rev := Polygon{{8, 0}, {8, 8}, {0, 8}, {0, 0}}
	if !rev.Contains(Vec{1, 1}) {
		t.Error("winding direction must not matter")
	}
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox([]Vec{{3, -1}, {-2, 4}, {0, 0}})
	if b != (Box{MinX: -2, MinY: -1, MaxX: 3, MaxY: 4}) {
		t.Errorf("BoundingBox = %+v", b)
	}
}
