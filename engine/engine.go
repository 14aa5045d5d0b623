// Package engine implements the placement engine: it resolves a placement
// intent (auto, rectangle, or preset name) against a slide's current shape
// state, reconciles placeholders, and issues the picture insertion through
// the automation contract.
package engine

import (
	"errors"
	"fmt"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/model"
)

var (
	// ErrAmbiguousSelector is returned when more than one replace selector
	// criterion is given.
	ErrAmbiguousSelector = errors.New("only one of pic, left, top, or z-order number may be set")

	// ErrIndexOutOfRange is returned when a replace selector ordinal is zero
	// or outside the picture count.
	ErrIndexOutOfRange = errors.New("picture index is out of range")
)

const (
	// overlapThreshold is the minimum intersection ratio (exclusive) for a
	// picture to qualify for replace-in-place.
	overlapThreshold = 0.1

	// placementTolerance is the maximum accepted difference, per component,
	// between the intended and the realized rectangle.
	placementTolerance = 0.1
)

// Engine executes placement operations against an automation backend.
// Operations are synchronous and assume at most one in-flight operation per
// presentation; shape collections are re-read after every mutation rather
// than cached.
type Engine struct {
	app automation.Application
}

// New creates an engine over the given automation backend.
func New(app automation.Application) *Engine {
	if app == nil {
		panic("engine: nil automation backend")
	}
	return &Engine{app: app}
}

// slide resolves a slide reference: 0 means the active slide, anything else
// is a 1-based slide number.
func (e *Engine) slide(n int) (automation.Slide, error) {
	if n == 0 {
		return e.app.ActiveSlide()
	}
	pres, err := e.app.ActivePresentation()
	if err != nil {
		return nil, err
	}
	return pres.Slide(n)
}

// dims queries the active presentation's slide dimensions. Queried per
// operation, never cached: the presentation may be resized between calls.
func (e *Engine) dims() (float64, float64, error) {
	pres, err := e.app.ActivePresentation()
	if err != nil {
		return 0, 0, err
	}
	return pres.SlideDimensions()
}

// Intent describes where a figure should be placed.
type Intent struct {
	kind   intentKind
	rect   model.Rect
	preset string
}

type intentKind int

const (
	intentAuto intentKind = iota
	intentRect
	intentPreset
)

// Auto places the figure into the first empty picture placeholder, falling
// back to the "center" preset when the slide has none.
func Auto() Intent {
	return Intent{kind: intentAuto}
}

// At places the figure at the given rectangle. Use the rectangle's units tag
// to state whether it is normalized or absolute; untagged rectangles with
// all components in [0, 1] are treated as normalized.
func At(r model.Rect) Intent {
	return Intent{kind: intentRect, rect: r}
}

// AtPreset places the figure at a named position preset.
func AtPreset(name string) Intent {
	return Intent{kind: intentPreset, preset: name}
}

// Selector picks one existing picture for replacement. Exactly one criterion
// may be set (non-zero); with none set, PicNo defaults to 1. Negative
// ordinals count from the end of the sorted sequence.
type Selector struct {
	// PicNo selects by position in enumeration order.
	PicNo int
	// LeftNo selects by ascending left coordinate.
	LeftNo int
	// TopNo selects by ascending top coordinate.
	TopNo int
	// ZOrderNo selects by z-order depth from the front (front-most = 1).
	ZOrderNo int
}

// AddOptions configures AddFigure.
type AddOptions struct {
	// SlideNo is the 1-based slide number; 0 targets the active slide.
	SlideNo int

	// KeepAspect preserves the raster's aspect ratio by shrinking the
	// resolved rectangle along one axis.
	KeepAspect bool

	// Replace looks for an existing picture overlapping the target
	// rectangle and, if one covers more than 10% of it, replaces that
	// picture in place.
	Replace bool

	// DeletePlaceholders removes all empty non-title placeholders before
	// insertion. When false, they are filled with sentinel text instead and
	// reverted afterwards.
	DeletePlaceholders bool

	// TargetZOrder, when positive, is the z position the inserted shape is
	// moved back to.
	TargetZOrder int

	// ImageWidth and ImageHeight are the raster's pixel dimensions. When
	// zero they are probed from the file.
	ImageWidth  float64
	ImageHeight float64

	// KeepFile prevents deletion of the raster file after the operation.
	KeepFile bool
}

// DefaultAddOptions returns the default AddFigure configuration.
func DefaultAddOptions() AddOptions {
	return AddOptions{
		KeepAspect:         true,
		DeletePlaceholders: true,
	}
}

// ReplaceOptions configures ReplaceFigure.
type ReplaceOptions struct {
	// SlideNo is the 1-based slide number; 0 targets the active slide.
	SlideNo int

	// KeepZOrder restores the new picture to the z position of the one it
	// replaces.
	KeepZOrder bool

	// KeepAspect preserves the raster's aspect ratio.
	KeepAspect bool

	// DeletePlaceholders removes all empty non-title placeholders before
	// insertion.
	DeletePlaceholders bool

	// ImageWidth and ImageHeight are the raster's pixel dimensions. When
	// zero they are probed from the file.
	ImageWidth  float64
	ImageHeight float64

	// KeepFile prevents deletion of the raster file after the operation.
	KeepFile bool
}

// DefaultReplaceOptions returns the default ReplaceFigure configuration.
func DefaultReplaceOptions() ReplaceOptions {
	return ReplaceOptions{
		KeepZOrder:         true,
		KeepAspect:         true,
		DeletePlaceholders: true,
	}
}

// WarningKind classifies non-fatal conditions.
type WarningKind int

const (
	// WarnPlacementMismatch means the realized geometry differs from the
	// intended geometry by more than the tolerance. The picture stays where
	// the host put it; the operation is still considered successful.
	WarnPlacementMismatch WarningKind = iota
	// WarnNoTitlePlaceholder means SetTitle found no title placeholder.
	WarnNoTitlePlaceholder
	// WarnNoSubtitlePlaceholder means SetSubtitle found no subtitle
	// placeholder.
	WarnNoSubtitlePlaceholder
)

// Warning is a non-fatal condition detected during an operation.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return w.Message
}

var _ fmt.Stringer = Warning{}
