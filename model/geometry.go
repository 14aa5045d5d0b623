package model

import "math"

// Units describes how the components of a Rect are to be interpreted.
//
// PowerPoint slide coordinates are expressed in points (or EMUs when reading
// a saved file), both of which are much larger than 1 for any real shape.
// Positions given as fractions of the slide dimensions therefore fit in
// [0, 1]. A rectangle whose four components all fall inside [0, 1] is
// ambiguous between the two; Untagged rectangles resolve that ambiguity by
// magnitude (all components in [0, 1] means normalized), while Normalized
// and Absolute state the caller's intent explicitly.
type Units int

const (
	// Untagged means the units are inferred from magnitude.
	Untagged Units = iota
	// Normalized means components are fractions of the slide dimensions.
	Normalized
	// Absolute means components are in slide units (points/EMUs).
	Absolute
)

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Rect represents a rectangle in slide coordinates. The origin is the
// top-left corner; Y grows downward, matching the PowerPoint object model.
type Rect struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
	Units  Units
}

// NewRect creates an untagged rectangle from coordinates.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Abs creates an explicitly absolute rectangle.
func Abs(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height, Units: Absolute}
}

// Norm creates an explicitly normalized rectangle.
func Norm(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height, Units: Normalized}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() float64 {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// IsValid returns true if the rectangle has positive dimensions.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Intersects checks if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right() <= other.Left() ||
		r.Left() >= other.Right() ||
		r.Bottom() <= other.Top() ||
		r.Top() >= other.Bottom())
}

// Intersection returns the overlapping region of two rectangles, or a zero
// rectangle if they do not overlap. The result carries the receiver's units.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{Units: r.Units}
	}

	x := math.Max(r.Left(), other.Left())
	y := math.Max(r.Top(), other.Top())
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
		Units:  r.Units,
	}
}

// IntersectionRatio returns the overlap area of r and b divided by the area
// of b. The result is in [0, 1]: 1 when b lies entirely inside r, 0 when the
// rectangles do not overlap or b has non-positive dimensions.
func (r Rect) IntersectionRatio(b Rect) float64 {
	if !b.IsValid() {
		return 0
	}
	inter := r.Intersection(b)
	if !inter.IsValid() {
		return 0
	}
	return inter.Area() / b.Area()
}

// InUnitSquare reports whether all four components lie in [0, 1]. Used to
// infer units for untagged rectangles.
func (r Rect) InUnitSquare() bool {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// MaxComponentDiff returns the largest absolute difference between the
// corresponding components of two rectangles. Units tags are ignored.
func (r Rect) MaxComponentDiff(other Rect) float64 {
	d := math.Abs(r.X - other.X)
	d = math.Max(d, math.Abs(r.Y-other.Y))
	d = math.Max(d, math.Abs(r.Width-other.Width))
	return math.Max(d, math.Abs(r.Height-other.Height))
}

// FitAspect shrinks bbox along one axis so that its aspect ratio matches an
// image of imgWidth x imgHeight pixels, keeping the result centered within
// the original rectangle. If the image is relatively wider than the bbox the
// full width is kept and the height shrinks; otherwise the full height is
// kept and the width shrinks. Equal aspect ratios return bbox unchanged.
func FitAspect(bbox Rect, imgWidth, imgHeight float64) Rect {
	imgAspect := imgWidth / imgHeight
	bboxAspect := bbox.Width / bbox.Height
	if imgAspect == bboxAspect {
		return bbox
	}
	if imgAspect > bboxAspect {
		newH := bbox.Width / imgAspect
		return Rect{
			X:      bbox.X,
			Y:      bbox.Y + bbox.Height/2 - newH/2,
			Width:  bbox.Width,
			Height: newH,
			Units:  bbox.Units,
		}
	}
	newW := bbox.Height * imgAspect
	return Rect{
		X:      bbox.X + bbox.Width/2 - newW/2,
		Y:      bbox.Y,
		Width:  newW,
		Height: bbox.Height,
		Units:  bbox.Units,
	}
}
