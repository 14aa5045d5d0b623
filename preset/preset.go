// Package preset resolves named slide positions to rectangles.
//
// A preset name is either a base preset ("center", "full") or a position
// modifier optionally followed by a size suffix ("topleft", "bottomrightL",
// "CenterXL", "233"). Names are case-insensitive. The resolved rectangle is
// normalized (fractions of the slide dimensions) and can be scaled to
// absolute slide units with ScaleToSlide.
package preset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/slidefig/model"
)

// ErrInvalidPreset is returned when a name matches neither a base preset nor
// a (modifier, size suffix) pair.
var ErrInvalidPreset = errors.New("unknown position preset")

// Base presets, keyed by lower-case name.
var bases = map[string]model.Rect{
	"center": model.NewRect(0.0415, 0.227, 0.917, 0.716),
	"full":   model.NewRect(0, 0, 1, 1),
}

// Size suffixes, keyed by upper-case suffix. The empty suffix is the default
// boundary, matching the "center" base preset.
var sizes = map[string]model.Rect{
	"":    model.NewRect(0.0415, 0.227, 0.917, 0.716),
	"L":   model.NewRect(0.0415, 0.153, 0.917, 0.790),
	"XL":  model.NewRect(0.0415, 0.049, 0.917, 0.888),
	"XXL": model.NewRect(0, 0, 1, 1),
}

// Position modifiers as fractions of the size boundary, keyed by lower-case
// name. Numeric codes address grid cells: 22x is the 2x2 grid, 23x the 2x3
// grid, counted row-major from the top left.
var modifiers = map[string]model.Rect{
	"center":      model.NewRect(0, 0, 1, 1),
	"left":        model.NewRect(0, 0, 0.5, 1),
	"right":       model.NewRect(0.5, 0, 0.5, 1),
	"topleft":     model.NewRect(0, 0, 0.5, 0.5),
	"topright":    model.NewRect(0.5, 0, 0.5, 0.5),
	"bottomleft":  model.NewRect(0, 0.5, 0.5, 0.5),
	"bottomright": model.NewRect(0.5, 0.5, 0.5, 0.5),
	"221":         model.NewRect(0, 0, 0.5, 0.5),
	"222":         model.NewRect(0.5, 0, 0.5, 0.5),
	"223":         model.NewRect(0, 0.5, 0.5, 0.5),
	"224":         model.NewRect(0.5, 0.5, 0.5, 0.5),
	"231":         model.NewRect(0, 0, 1.0/3.0, 0.5),
	"232":         model.NewRect(1.0/3.0, 0, 1.0/3.0, 0.5),
	"233":         model.NewRect(2.0/3.0, 0, 1.0/3.0, 0.5),
	"234":         model.NewRect(0, 0.5, 1.0/3.0, 0.5),
	"235":         model.NewRect(1.0/3.0, 0.5, 1.0/3.0, 0.5),
	"236":         model.NewRect(2.0/3.0, 0.5, 1.0/3.0, 0.5),
}

// IsValid reports whether name resolves to a known preset.
func IsValid(name string) bool {
	_, err := Resolve(name)
	return err == nil
}

// Resolve maps a preset name to a normalized rectangle.
//
// Base presets are checked first. Otherwise the longest size suffix that
// matches the name ("XXL" before "XL" before "L" before none) selects the
// boundary rectangle, and the remainder of the name selects the modifier.
// The result composes the modifier within the boundary:
//
//	x = boundary.x + mod.x*boundary.w
//	y = boundary.y + mod.y*boundary.h
//	w = boundary.w * mod.w
//	h = boundary.h * mod.h
func Resolve(name string) (model.Rect, error) {
	if base, ok := bases[strings.ToLower(name)]; ok {
		return tagged(base), nil
	}

	upper := strings.ToUpper(name)
	suffix := ""
	for s := range sizes {
		if strings.HasSuffix(upper, s) && len(s) > len(suffix) {
			suffix = s
		}
	}
	boundary := sizes[suffix]

	modName := strings.ToLower(name[:len(name)-len(suffix)])
	mod, ok := modifiers[modName]
	if !ok {
		return model.Rect{}, fmt.Errorf("%w: %q", ErrInvalidPreset, name)
	}

	return tagged(model.Rect{
		X:      boundary.X + mod.X*boundary.Width,
		Y:      boundary.Y + mod.Y*boundary.Height,
		Width:  boundary.Width * mod.Width,
		Height: boundary.Height * mod.Height,
	}), nil
}

func tagged(r model.Rect) model.Rect {
	r.Units = model.Normalized
	return r
}

// ScaleToSlide converts a rectangle to absolute slide units. Rectangles
// tagged Normalized are always scaled; rectangles tagged Absolute are
// returned unchanged; untagged rectangles are scaled only when all four
// components lie in [0, 1].
func ScaleToSlide(r model.Rect, slideWidth, slideHeight float64) model.Rect {
	switch r.Units {
	case model.Absolute:
		return r
	case model.Untagged:
		if !r.InUnitSquare() {
			r.Units = model.Absolute
			return r
		}
	}
	return model.Rect{
		X:      r.X * slideWidth,
		Y:      r.Y * slideHeight,
		Width:  r.Width * slideWidth,
		Height: r.Height * slideHeight,
		Units:  model.Absolute,
	}
}
