package model

import (
	"math"
	"testing"
)

const eps = 1e-9

func rectsClose(a, b Rect) bool {
	return a.MaxComponentDiff(b) < eps
}

func TestIntersectionRatio_NoOverlap(t *testing.T) {
	a := NewRect(0, 0, 1, 1)
	b := NewRect(10, 10, 1, 1)
	if got := a.IntersectionRatio(b); got != 0 {
		t.Errorf("expected 0 for disjoint rectangles, got %f", got)
	}
}

func TestIntersectionRatio_FullContainment(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(25, 25, 50, 50)
	if got := a.IntersectionRatio(b); math.Abs(got-1) > eps {
		t.Errorf("expected 1 for contained rectangle, got %f", got)
	}
}

func TestIntersectionRatio_PartialOverlap(t *testing.T) {
	// b is 10x10; a covers its left half.
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 0, 10, 10)
	if got := a.IntersectionRatio(b); math.Abs(got-0.5) > eps {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestIntersectionRatio_TouchingEdges(t *testing.T) {
	a := NewRect(0, 0, 5, 5)
	b := NewRect(5, 0, 5, 5)
	if got := a.IntersectionRatio(b); got != 0 {
		t.Errorf("expected 0 for edge-touching rectangles, got %f", got)
	}
}

func TestIntersectionRatio_Bounds(t *testing.T) {
	cases := []struct {
		a, b Rect
	}{
		{NewRect(0, 0, 3, 3), NewRect(1, 1, 3, 3)},
		{NewRect(-5, -5, 10, 10), NewRect(0, 0, 2, 2)},
		{NewRect(0, 0, 1, 1), NewRect(0.5, 0.5, 4, 4)},
	}
	for i, c := range cases {
		got := c.a.IntersectionRatio(c.b)
		if got < 0 || got > 1 {
			t.Errorf("case %d: ratio %f out of [0,1]", i, got)
		}
	}
}

func TestIntersectionRatio_DegenerateTarget(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(2, 2, 0, 5)
	if got := a.IntersectionRatio(b); got != 0 {
		t.Errorf("expected 0 for zero-width target, got %f", got)
	}
}

func TestFitAspect_EqualAspectUnchanged(t *testing.T) {
	bbox := NewRect(0, 0, 10, 5)
	got := FitAspect(bbox, 2, 1) // aspect 2.0 matches 10/5
	if got != bbox {
		t.Errorf("expected bbox unchanged, got %+v", got)
	}
}

func TestFitAspect_WiderImage(t *testing.T) {
	// Image aspect 4.0 into bbox aspect 2.0: width stays, height halves
	// and is re-centered vertically.
	bbox := NewRect(0, 0, 10, 5)
	got := FitAspect(bbox, 4, 1)
	want := NewRect(0, 1.25, 10, 2.5)
	if !rectsClose(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFitAspect_TallerImage(t *testing.T) {
	// Image aspect 1.0 into bbox aspect 2.0: height stays, width shrinks
	// and is re-centered horizontally.
	bbox := NewRect(0, 0, 10, 5)
	got := FitAspect(bbox, 1, 1)
	want := NewRect(2.5, 0, 5, 5)
	if !rectsClose(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFitAspect_PreservesUnits(t *testing.T) {
	bbox := Norm(0, 0, 0.5, 0.5)
	got := FitAspect(bbox, 2, 1)
	if got.Units != Normalized {
		t.Errorf("expected units to be preserved, got %v", got.Units)
	}
}

func TestInUnitSquare(t *testing.T) {
	cases := []struct {
		r    Rect
		want bool
	}{
		{NewRect(0, 0, 1, 1), true},
		{NewRect(0.0415, 0.227, 0.917, 0.716), true},
		{NewRect(0, 0, 10, 5), false},
		{NewRect(-0.1, 0, 0.5, 0.5), false},
		{NewRect(100, 100, 200, 150), false},
	}
	for i, c := range cases {
		if got := c.r.InUnitSquare(); got != c.want {
			t.Errorf("case %d: InUnitSquare(%+v) = %v, want %v", i, c.r, got, c.want)
		}
	}
}

func TestMaxComponentDiff(t *testing.T) {
	a := NewRect(1, 2, 3, 4)
	b := NewRect(1.05, 2, 3, 3.8)
	if got := a.MaxComponentDiff(b); math.Abs(got-0.2) > eps {
		t.Errorf("expected 0.2, got %f", got)
	}
}

func TestIntersection_Disjoint(t *testing.T) {
	a := NewRect(0, 0, 1, 1)
	b := NewRect(5, 5, 1, 1)
	if got := a.Intersection(b); got.IsValid() {
		t.Errorf("expected invalid rect for disjoint input, got %+v", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Left() != 10 || r.Right() != 40 || r.Top() != 20 || r.Bottom() != 60 {
		t.Errorf("unexpected edges for %+v", r)
	}
	c := r.Center()
	if c.X != 25 || c.Y != 40 {
		t.Errorf("unexpected center %+v", c)
	}
}
