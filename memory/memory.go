// Package memory implements the automation contract with an in-memory
// presentation. It backs the engine and relay tests and the relay server's
// dry-run mode, where commands are executed against a scratch presentation
// instead of a live host.
package memory

import (
	"fmt"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/model"
)

// Host is an in-memory presentation host. It implements both
// automation.Application and automation.Presentation: the in-memory world has
// exactly one presentation, which is always the active one.
type Host struct {
	width  float64
	height float64
	slides []*Slide
	active int // index into slides

	// AdjustInsert, when set, perturbs the rectangle actually applied by
	// AddPicture. Tests use it to simulate a host that silently
	// reinterprets placement (e.g. absorbs the picture into a placeholder).
	AdjustInsert func(model.Rect) model.Rect
}

// New creates a host with the given slide dimensions and one empty slide.
func New(width, height float64) *Host {
	h := &Host{width: width, height: height}
	h.slides = []*Slide{{host: h}}
	return h
}

// Available implements automation.Availabler.
func (h *Host) Available() error { return nil }

// ActivePresentation implements automation.Application.
func (h *Host) ActivePresentation() (automation.Presentation, error) {
	return h, nil
}

// ActiveSlide implements automation.Application.
func (h *Host) ActiveSlide() (automation.Slide, error) {
	return h.slides[h.active], nil
}

// GotoSlide implements automation.Application.
func (h *Host) GotoSlide(n int) error {
	if n < 1 || n > len(h.slides) {
		return fmt.Errorf("slide number %d out of range [1, %d]", n, len(h.slides))
	}
	h.active = n - 1
	return nil
}

// SlideDimensions implements automation.Presentation.
func (h *Host) SlideDimensions() (float64, float64, error) {
	return h.width, h.height, nil
}

// Resize changes the slide dimensions, as a user resizing the page setup
// between operations would.
func (h *Host) Resize(width, height float64) {
	h.width = width
	h.height = height
}

// SlideCount implements automation.Presentation.
func (h *Host) SlideCount() (int, error) {
	return len(h.slides), nil
}

// Slide implements automation.Presentation.
func (h *Host) Slide(n int) (automation.Slide, error) {
	if n < 1 || n > len(h.slides) {
		return nil, fmt.Errorf("slide number %d out of range [1, %d]", n, len(h.slides))
	}
	return h.slides[n-1], nil
}

// MustSlide returns a slide for test setup, panicking on a bad number.
func (h *Host) MustSlide(n int) *Slide {
	if n < 1 || n > len(h.slides) {
		panic(fmt.Sprintf("slide number %d out of range", n))
	}
	return h.slides[n-1]
}

// AddSlide implements automation.Presentation. The new slide copies the
// placeholder skeleton (geometry and kinds, no content) of the layoutAs
// slide, mimicking insertion with a custom layout.
func (h *Host) AddSlide(position, layoutAs int) (automation.Slide, error) {
	if layoutAs < 1 || layoutAs > len(h.slides) {
		return nil, fmt.Errorf("layout slide %d out of range [1, %d]", layoutAs, len(h.slides))
	}
	if position < 1 {
		position = 1
	}
	if position > len(h.slides)+1 {
		position = len(h.slides) + 1
	}

	s := &Slide{host: h}
	for _, sh := range h.slides[layoutAs-1].shapes {
		if sh.kind != automation.ShapePlaceholder {
			continue
		}
		s.shapes = append(s.shapes, &Shape{
			slide:     s,
			kind:      automation.ShapePlaceholder,
			phKind:    sh.phKind,
			contained: automation.ShapeAuto,
			hasText:   sh.hasText,
			rect:      sh.rect,
		})
	}

	idx := position - 1
	h.slides = append(h.slides, nil)
	copy(h.slides[idx+1:], h.slides[idx:])
	h.slides[idx] = s
	return s, nil
}

// Notes implements automation.Presentation.
func (h *Host) Notes() ([]string, error) {
	notes := make([]string, len(h.slides))
	for i, s := range h.slides {
		notes[i] = s.notes
	}
	return notes, nil
}
