// Package placeholder classifies and manages slide placeholders: detecting
// empty ones, listing the shapes that visually display an image, and the
// sentinel-text workaround that keeps the insertion host from silently
// absorbing a new picture into the first empty placeholder.
package placeholder

import (
	"fmt"

	"github.com/tsawler/slidefig/automation"
)

// SentinelText is written into empty placeholders before a picture is
// inserted at explicit coordinates, and cleared again afterwards. Without it
// the host places the picture inside the first empty placeholder, ignoring
// the requested geometry.
const SentinelText = "--TO-BE-REMOVED--"

// Shapes enumerates a slide's shapes, optionally filtered by kind.
func Shapes(slide automation.Slide, kinds ...automation.ShapeKind) ([]automation.Shape, error) {
	shapes, err := slide.Shapes()
	if err != nil {
		return nil, fmt.Errorf("enumerating shapes: %w", err)
	}
	if len(kinds) == 0 {
		return shapes, nil
	}
	var out []automation.Shape
	for _, sh := range shapes {
		for _, k := range kinds {
			if sh.Kind() == k {
				out = append(out, sh)
				break
			}
		}
	}
	return out, nil
}

// Placeholders returns the slide's placeholder shapes.
func Placeholders(slide automation.Slide) ([]automation.Shape, error) {
	return Shapes(slide, automation.ShapePlaceholder)
}

// IsEmpty reports whether a placeholder carries no content: its contained
// type is still the generic auto-shape and it either has no text frame or
// the text frame is empty.
func IsEmpty(sh automation.Shape) bool {
	if sh.Kind() != automation.ShapePlaceholder {
		return false
	}
	if sh.ContainedKind() != automation.ShapeAuto {
		return false
	}
	if !sh.HasTextFrame() {
		return true
	}
	return len(sh.Text()) == 0
}

// PicturePlaceholders returns the placeholders whose kind displays an image
// when filled. With emptyOnly set, occupied ones are filtered out.
func PicturePlaceholders(slide automation.Slide, emptyOnly bool) ([]automation.Shape, error) {
	phs, err := Placeholders(slide)
	if err != nil {
		return nil, err
	}
	var out []automation.Shape
	for _, p := range phs {
		if !p.PlaceholderKind().IsPictureLike() {
			continue
		}
		if emptyOnly && !IsEmpty(p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Pictures returns every shape on the slide that visually displays an image:
// true picture shapes plus occupied picture-kind placeholders.
func Pictures(slide automation.Slide) ([]automation.Shape, error) {
	shapes, err := slide.Shapes()
	if err != nil {
		return nil, fmt.Errorf("enumerating shapes: %w", err)
	}
	var out []automation.Shape
	for _, sh := range shapes {
		switch sh.Kind() {
		case automation.ShapePicture:
			out = append(out, sh)
		case automation.ShapePlaceholder:
			if sh.PlaceholderKind().IsPictureLike() && !IsEmpty(sh) {
				out = append(out, sh)
			}
		}
	}
	return out, nil
}

// FillEmpty writes the sentinel text into every empty non-title placeholder
// that has a text frame and returns the shapes that were filled, so the
// caller can revert them after the insertion. Placeholders without text
// frames (e.g. chart placeholders) are left untouched.
func FillEmpty(slide automation.Slide) ([]automation.Shape, error) {
	phs, err := Placeholders(slide)
	if err != nil {
		return nil, err
	}
	var filled []automation.Shape
	for _, p := range phs {
		if !IsEmpty(p) || p.PlaceholderKind().IsTitleLike() {
			continue
		}
		if !p.HasTextFrame() {
			continue
		}
		if err := p.SetText(SentinelText); err != nil {
			return filled, fmt.Errorf("filling placeholder: %w", err)
		}
		filled = append(filled, p)
	}
	return filled, nil
}

// Revert clears the sentinel text from placeholders filled by FillEmpty.
func Revert(shapes []automation.Shape) error {
	for _, sh := range shapes {
		if err := sh.SetText(""); err != nil {
			return fmt.Errorf("reverting placeholder: %w", err)
		}
	}
	return nil
}

// DeleteEmpty deletes every empty non-title placeholder on the slide.
// Deletion runs in reverse enumeration order so that earlier handles are
// never invalidated by removing later ones.
func DeleteEmpty(slide automation.Slide) error {
	phs, err := Placeholders(slide)
	if err != nil {
		return err
	}
	for i := len(phs) - 1; i >= 0; i-- {
		p := phs[i]
		if !IsEmpty(p) || p.PlaceholderKind().IsTitleLike() {
			continue
		}
		if err := p.Delete(); err != nil {
			return fmt.Errorf("deleting placeholder: %w", err)
		}
	}
	return nil
}
