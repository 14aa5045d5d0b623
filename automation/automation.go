// Package automation defines the contract consumed from the external
// presentation-automation service: slide and shape enumeration with geometry,
// picture insertion, deletion, z-order control, and text access.
//
// The package contains no automation logic of its own. Backends implement
// these interfaces: the memory package provides a mutable in-memory host for
// tests and dry runs, and the pptxfile package provides a read-only view of
// a saved .pptx archive. A native COM binding is deliberately out of scope.
package automation

import (
	"errors"

	"github.com/tsawler/slidefig/model"
)

// ErrUnavailable is returned when the automation service cannot be reached,
// for example when no backend is configured on the current platform. It is
// raised before any slide access is attempted.
var ErrUnavailable = errors.New("presentation automation service is not available")

// ErrReadOnly is returned by mutating operations on backends that only
// support inspection.
var ErrReadOnly = errors.New("presentation backend is read-only")

// Application is the entry point to a presentation host.
type Application interface {
	// ActivePresentation returns the presentation currently in focus.
	ActivePresentation() (Presentation, error)

	// ActiveSlide returns the slide currently shown in the active window.
	ActiveSlide() (Slide, error)

	// GotoSlide changes the active slide (1-based).
	GotoSlide(n int) error
}

// Availabler is optionally implemented by backends that can report their
// health without performing an operation.
type Availabler interface {
	Available() error
}

// Presentation gives access to slides and page setup.
type Presentation interface {
	// SlideDimensions returns the slide width and height in slide units.
	// Dimensions are queried per call and must not be cached: the
	// presentation may be resized between operations.
	SlideDimensions() (width, height float64, err error)

	// SlideCount returns the number of slides.
	SlideCount() (int, error)

	// Slide returns the slide with the given 1-based number.
	Slide(n int) (Slide, error)

	// AddSlide inserts a new slide at the given 1-based position, using the
	// custom layout of the slide layoutAs, and returns it.
	AddSlide(position, layoutAs int) (Slide, error)

	// Notes returns the speaker notes of every slide, in slide order.
	Notes() ([]string, error)
}

// Slide owns a shape collection. Shape handles become invalid as soon as any
// shape on the slide is inserted or deleted; callers must re-enumerate after
// every mutation instead of holding on to stale handles.
type Slide interface {
	// Number returns the 1-based slide number.
	Number() int

	// Shapes enumerates the slide's shapes in insertion order.
	Shapes() ([]Shape, error)

	// AddPicture inserts the raster file at the given absolute rectangle and
	// returns the new shape. The file is embedded, not linked.
	AddPicture(filename string, r model.Rect) (Shape, error)
}

// Shape is a single shape on a slide.
//
// HasTextFrame is a typed capability query: callers check it before touching
// text instead of probing properties and swallowing errors.
type Shape interface {
	// Rect returns the shape's absolute geometry.
	Rect() model.Rect

	// Kind returns the shape type.
	Kind() ShapeKind

	// PlaceholderKind returns the placeholder type, or PlaceholderNone for
	// shapes that are not placeholders.
	PlaceholderKind() PlaceholderKind

	// ContainedKind returns the type of the content a placeholder carries.
	// For non-placeholders it equals Kind.
	ContainedKind() ShapeKind

	// HasTextFrame reports whether the shape carries a text frame.
	HasTextFrame() bool

	// Text returns the text frame content; empty for shapes without one.
	Text() string

	// SetText replaces the text frame content.
	SetText(s string) error

	// Delete removes the shape from its slide.
	Delete() error

	// ZOrderPosition returns the 1-based position in the z stack, counted
	// from the back.
	ZOrderPosition() int

	// ZOrder applies a z-order command to the shape.
	ZOrder(cmd ZOrderCmd) error
}
