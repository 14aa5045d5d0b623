package memory

import (
	"fmt"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/model"
)

// Slide is an in-memory slide. Shapes are stored back-to-front, so slice
// order doubles as both enumeration order and z-order, exactly as freshly
// inserted shapes behave in the real host.
type Slide struct {
	host   *Host
	shapes []*Shape
	notes  string
}

// Number implements automation.Slide.
func (s *Slide) Number() int {
	for i, sl := range s.host.slides {
		if sl == s {
			return i + 1
		}
	}
	return 0
}

// Shapes implements automation.Slide.
func (s *Slide) Shapes() ([]automation.Shape, error) {
	out := make([]automation.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = sh
	}
	return out, nil
}

// AddPicture implements automation.Slide.
func (s *Slide) AddPicture(filename string, r model.Rect) (automation.Shape, error) {
	if filename == "" {
		return nil, fmt.Errorf("picture filename must not be empty")
	}
	applied := r
	applied.Units = model.Absolute
	if s.host.AdjustInsert != nil {
		applied = s.host.AdjustInsert(applied)
	}
	sh := &Shape{
		slide:     s,
		kind:      automation.ShapePicture,
		contained: automation.ShapePicture,
		rect:      applied,
		path:      filename,
	}
	s.shapes = append(s.shapes, sh)
	return sh, nil
}

// SetNotes sets the slide's speaker notes.
func (s *Slide) SetNotes(text string) {
	s.notes = text
}

// AddPictureShape adds a plain picture shape for test setup.
func (s *Slide) AddPictureShape(r model.Rect) *Shape {
	sh := &Shape{
		slide:     s,
		kind:      automation.ShapePicture,
		contained: automation.ShapePicture,
		rect:      abs(r),
	}
	s.shapes = append(s.shapes, sh)
	return sh
}

// AddTextBox adds a text box shape for test setup.
func (s *Slide) AddTextBox(r model.Rect, text string) *Shape {
	sh := &Shape{
		slide:     s,
		kind:      automation.ShapeTextBox,
		contained: automation.ShapeTextBox,
		hasText:   true,
		text:      text,
		rect:      abs(r),
	}
	s.shapes = append(s.shapes, sh)
	return sh
}

// AddPlaceholder adds a placeholder shape for test setup. Empty placeholders
// carry a generic auto-shape as their contained type until content arrives.
func (s *Slide) AddPlaceholder(kind automation.PlaceholderKind, r model.Rect, hasTextFrame bool) *Shape {
	sh := &Shape{
		slide:     s,
		kind:      automation.ShapePlaceholder,
		phKind:    kind,
		contained: automation.ShapeAuto,
		hasText:   hasTextFrame,
		rect:      abs(r),
	}
	s.shapes = append(s.shapes, sh)
	return sh
}

// AddFilledPicturePlaceholder adds a picture-kind placeholder that already
// contains an image.
func (s *Slide) AddFilledPicturePlaceholder(kind automation.PlaceholderKind, r model.Rect) *Shape {
	sh := &Shape{
		slide:     s,
		kind:      automation.ShapePlaceholder,
		phKind:    kind,
		contained: automation.ShapePicture,
		rect:      abs(r),
	}
	s.shapes = append(s.shapes, sh)
	return sh
}

func abs(r model.Rect) model.Rect {
	r.Units = model.Absolute
	return r
}

func (s *Slide) indexOf(sh *Shape) int {
	for i, cur := range s.shapes {
		if cur == sh {
			return i
		}
	}
	return -1
}

func (s *Slide) remove(sh *Shape) error {
	i := s.indexOf(sh)
	if i < 0 {
		return fmt.Errorf("shape no longer belongs to the slide")
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	sh.slide = nil
	return nil
}

func (s *Slide) move(sh *Shape, to int) {
	from := s.indexOf(sh)
	if from < 0 || to == from {
		return
	}
	if to < 0 {
		to = 0
	}
	if to >= len(s.shapes) {
		to = len(s.shapes) - 1
	}
	s.shapes = append(s.shapes[:from], s.shapes[from+1:]...)
	s.shapes = append(s.shapes[:to], append([]*Shape{sh}, s.shapes[to:]...)...)
}
