package memory

import (
	"fmt"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/model"
)

// Shape is an in-memory shape.
type Shape struct {
	slide     *Slide
	kind      automation.ShapeKind
	phKind    automation.PlaceholderKind
	contained automation.ShapeKind
	hasText   bool
	text      string
	rect      model.Rect
	path      string // source file for pictures
}

// Rect implements automation.Shape.
func (sh *Shape) Rect() model.Rect { return sh.rect }

// SetRect moves/resizes the shape, for test setup.
func (sh *Shape) SetRect(r model.Rect) { sh.rect = abs(r) }

// Kind implements automation.Shape.
func (sh *Shape) Kind() automation.ShapeKind { return sh.kind }

// PlaceholderKind implements automation.Shape.
func (sh *Shape) PlaceholderKind() automation.PlaceholderKind { return sh.phKind }

// ContainedKind implements automation.Shape.
func (sh *Shape) ContainedKind() automation.ShapeKind { return sh.contained }

// HasTextFrame implements automation.Shape.
func (sh *Shape) HasTextFrame() bool { return sh.hasText }

// Text implements automation.Shape.
func (sh *Shape) Text() string {
	if !sh.hasText {
		return ""
	}
	return sh.text
}

// SetText implements automation.Shape.
func (sh *Shape) SetText(s string) error {
	if !sh.hasText {
		return fmt.Errorf("shape has no text frame")
	}
	sh.text = s
	return nil
}

// Path returns the source file of a picture shape, for test assertions.
func (sh *Shape) Path() string { return sh.path }

// Delete implements automation.Shape.
func (sh *Shape) Delete() error {
	if sh.slide == nil {
		return fmt.Errorf("shape already deleted")
	}
	return sh.slide.remove(sh)
}

// ZOrderPosition implements automation.Shape.
func (sh *Shape) ZOrderPosition() int {
	if sh.slide == nil {
		return 0
	}
	return sh.slide.indexOf(sh) + 1
}

// ZOrder implements automation.Shape.
func (sh *Shape) ZOrder(cmd automation.ZOrderCmd) error {
	if sh.slide == nil {
		return fmt.Errorf("shape already deleted")
	}
	i := sh.slide.indexOf(sh)
	switch cmd {
	case automation.BringToFront:
		sh.slide.move(sh, len(sh.slide.shapes)-1)
	case automation.SendToBack:
		sh.slide.move(sh, 0)
	case automation.BringForward:
		sh.slide.move(sh, i+1)
	case automation.SendBackward:
		sh.slide.move(sh, i-1)
	default:
		return fmt.Errorf("unsupported z-order command %d", cmd)
	}
	return nil
}
