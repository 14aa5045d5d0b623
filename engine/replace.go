package engine

import (
	"fmt"
	"os"
	"sort"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/placeholder"
)

// ReplaceFigure deletes one existing picture, selected by sel, and inserts
// the raster file in its place. The saved rectangle is reused as an absolute
// placement, and with opts.KeepZOrder the saved z position is restored.
//
// Selector validation happens before any mutation: more than one criterion
// fails with ErrAmbiguousSelector, an ordinal of zero or beyond the picture
// count fails with ErrIndexOutOfRange.
func (e *Engine) ReplaceFigure(path string, sel Selector, opts ReplaceOptions) (warnings []Warning, err error) {
	handedOff := false
	defer func() {
		if !handedOff && !opts.KeepFile {
			os.Remove(path)
		}
	}()

	set := 0
	for _, v := range []int{sel.PicNo, sel.LeftNo, sel.TopNo, sel.ZOrderNo} {
		if v != 0 {
			set++
		}
	}
	if set > 1 {
		return nil, ErrAmbiguousSelector
	}
	if set == 0 {
		sel.PicNo = 1
	}

	slide, err := e.slide(opts.SlideNo)
	if err != nil {
		return nil, err
	}
	pics, err := placeholder.Pictures(slide)
	if err != nil {
		return nil, err
	}

	ordered := append([]automation.Shape(nil), pics...)
	var no int
	switch {
	case sel.PicNo != 0:
		no = sel.PicNo // enumeration order as-is
	case sel.LeftNo != 0:
		no = sel.LeftNo
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Rect().X < ordered[j].Rect().X
		})
	case sel.TopNo != 0:
		no = sel.TopNo
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Rect().Y < ordered[j].Rect().Y
		})
	case sel.ZOrderNo != 0:
		no = sel.ZOrderNo
		// Depth from the front: front-most picture first.
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].ZOrderPosition() > ordered[j].ZOrderPosition()
		})
	}

	if no == 0 || no > len(ordered) || no < -len(ordered) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, no, len(ordered))
	}
	idx := no - 1
	if no < 0 {
		idx = len(ordered) + no
	}
	pic := ordered[idx]

	saved := pic.Rect()
	savedZ := pic.ZOrderPosition()
	if err := pic.Delete(); err != nil {
		return nil, fmt.Errorf("deleting picture: %w", err)
	}

	addOpts := AddOptions{
		SlideNo:            opts.SlideNo,
		KeepAspect:         opts.KeepAspect,
		DeletePlaceholders: opts.DeletePlaceholders,
		ImageWidth:         opts.ImageWidth,
		ImageHeight:        opts.ImageHeight,
		KeepFile:           opts.KeepFile,
	}
	if opts.KeepZOrder {
		addOpts.TargetZOrder = savedZ
	}

	handedOff = true
	return e.AddFigure(path, At(saved), addOpts)
}
