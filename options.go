package slidefig

import (
	"github.com/tsawler/slidefig/engine"
	"github.com/tsawler/slidefig/model"
	"github.com/tsawler/slidefig/preset"
)

// Figure is a fluent placement of one raster file. Each configuration method
// returns a new Figure instance, making chains safe to fork and reuse.
type Figure struct {
	session *Session
	path    string

	intent  engine.Intent
	add     engine.AddOptions
	replace engine.ReplaceOptions
	sel     engine.Selector

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Figure so that chain methods never mutate the
// instance they were called on.
func (f *Figure) clone() *Figure {
	c := *f
	return &c
}

// At places the figure at the given rectangle. Components all inside [0, 1]
// are taken as fractions of the slide size; anything else is absolute slide
// units.
func (f *Figure) At(x, y, width, height float64) *Figure {
	return f.AtRect(model.NewRect(x, y, width, height))
}

// AtRect places the figure at the given rectangle, honoring its units tag.
func (f *Figure) AtRect(r model.Rect) *Figure {
	c := f.clone()
	c.intent = engine.At(r)
	return c
}

// Preset places the figure at a named position preset such as "Center",
// "TopLeftXL", or "231". Names are case-insensitive.
func (f *Figure) Preset(name string) *Figure {
	c := f.clone()
	if !preset.IsValid(name) {
		c.err = preset.ErrInvalidPreset
		return c
	}
	c.intent = engine.AtPreset(name)
	return c
}

// Slide targets the given 1-based slide number instead of the active slide.
func (f *Figure) Slide(n int) *Figure {
	c := f.clone()
	c.add.SlideNo = n
	c.replace.SlideNo = n
	return c
}

// NoAspect stretches the figure to the full target rectangle instead of
// preserving its aspect ratio.
func (f *Figure) NoAspect() *Figure {
	c := f.clone()
	c.add.KeepAspect = false
	c.replace.KeepAspect = false
	return c
}

// ReplaceOverlapping makes Add take over the rectangle and z position of an
// existing picture that covers more than 10% of the target rectangle.
func (f *Figure) ReplaceOverlapping() *Figure {
	c := f.clone()
	c.add.Replace = true
	return c
}

// KeepPlaceholders fills empty placeholders with sentinel text during
// insertion and reverts them afterwards, instead of deleting them.
func (f *Figure) KeepPlaceholders() *Figure {
	c := f.clone()
	c.add.DeletePlaceholders = false
	c.replace.DeletePlaceholders = false
	return c
}

// TargetZOrder moves the inserted figure back to the given z position.
func (f *Figure) TargetZOrder(z int) *Figure {
	c := f.clone()
	c.add.TargetZOrder = z
	return c
}

// PixelSize supplies the raster's pixel dimensions, skipping the file probe.
func (f *Figure) PixelSize(width, height float64) *Figure {
	c := f.clone()
	c.add.ImageWidth = width
	c.add.ImageHeight = height
	c.replace.ImageWidth = width
	c.replace.ImageHeight = height
	return c
}

// KeepFile leaves the raster file on disk after the operation. By default it
// is treated as a temporary and removed.
func (f *Figure) KeepFile() *Figure {
	c := f.clone()
	c.add.KeepFile = true
	c.replace.KeepFile = true
	return c
}

// Pic selects the picture to replace by enumeration order.
func (f *Figure) Pic(n int) *Figure {
	c := f.clone()
	c.sel = engine.Selector{PicNo: n}
	return c
}

// Left selects the picture to replace by ascending left coordinate.
// Negative ordinals count from the right.
func (f *Figure) Left(n int) *Figure {
	c := f.clone()
	c.sel = engine.Selector{LeftNo: n}
	return c
}

// Top selects the picture to replace by ascending top coordinate.
func (f *Figure) Top(n int) *Figure {
	c := f.clone()
	c.sel = engine.Selector{TopNo: n}
	return c
}

// Z selects the picture to replace by z-order depth from the front
// (front-most = 1).
func (f *Figure) Z(n int) *Figure {
	c := f.clone()
	c.sel = engine.Selector{ZOrderNo: n}
	return c
}

// NewZOrder puts the replacement in front instead of restoring the replaced
// picture's z position.
func (f *Figure) NewZOrder() *Figure {
	c := f.clone()
	c.replace.KeepZOrder = false
	return c
}

// Add inserts the figure.
func (f *Figure) Add() ([]Warning, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session.eng.AddFigure(f.path, f.intent, f.add)
}

// Replace deletes the selected existing picture and inserts the figure in
// its place. With no selector set, the first picture in enumeration order is
// replaced.
func (f *Figure) Replace() ([]Warning, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session.eng.ReplaceFigure(f.path, f.sel, f.replace)
}
