package engine

import (
	"fmt"
	"os"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/model"
	"github.com/tsawler/slidefig/placeholder"
	"github.com/tsawler/slidefig/preset"
	"github.com/tsawler/slidefig/raster"
)

// AddFigure inserts the raster file at the resolved placement and returns
// any non-fatal warnings. Unless opts.KeepFile is set, the raster file is
// removed when the operation finishes, on failure paths included.
//
// Placement resolution:
//
//  1. An Auto intent uses the first empty picture placeholder's rectangle,
//     or falls back to the "center" preset. When a placeholder is used, no
//     other placeholder is filled or deleted: the picture occupies it.
//  2. Preset intents resolve through the preset package; normalized
//     rectangles are scaled to the slide dimensions.
//  3. With opts.Replace, the existing picture most covered by the target
//     rectangle (more than 10% of its area) is deleted and its rectangle
//     and z position are taken over.
//  4. With opts.KeepAspect, the rectangle shrinks along one axis to the
//     raster's aspect ratio.
//  5. After insertion the shape is sent backward until it reaches the
//     target z position, and the realized geometry is verified against the
//     intended one within a 0.1 unit tolerance.
func (e *Engine) AddFigure(path string, intent Intent, opts AddOptions) (warnings []Warning, err error) {
	if !opts.KeepFile {
		defer os.Remove(path)
	}

	slide, err := e.slide(opts.SlideNo)
	if err != nil {
		return nil, err
	}

	usedPlaceholder := false
	var bbox model.Rect
	switch intent.kind {
	case intentAuto:
		phs, err := placeholder.PicturePlaceholders(slide, true)
		if err != nil {
			return nil, err
		}
		if len(phs) > 0 {
			bbox = phs[0].Rect()
			usedPlaceholder = true
		} else {
			bbox, _ = preset.Resolve("center")
		}
	case intentPreset:
		bbox, err = preset.Resolve(intent.preset)
		if err != nil {
			return nil, err
		}
	case intentRect:
		bbox = intent.rect
	}

	slideW, slideH, err := e.dims()
	if err != nil {
		return nil, err
	}
	bbox = preset.ScaleToSlide(bbox, slideW, slideH)

	// Replace-in-place: take over the rectangle and z position of the
	// picture the target overlaps the most, if any overlaps enough.
	targetZ := opts.TargetZOrder
	replacing := false
	if opts.Replace && !usedPlaceholder {
		pics, err := placeholder.Pictures(slide)
		if err != nil {
			return nil, err
		}
		var best automation.Shape
		bestRatio := 0.0
		for _, p := range pics {
			if ratio := bbox.IntersectionRatio(p.Rect()); ratio > bestRatio {
				bestRatio, best = ratio, p
			}
		}
		if best != nil && bestRatio > overlapThreshold {
			targetZ = best.ZOrderPosition()
			bbox = best.Rect()
			if err := best.Delete(); err != nil {
				return nil, fmt.Errorf("deleting overlapped picture: %w", err)
			}
			replacing = true
		}
	}

	if opts.KeepAspect {
		imgW, imgH := opts.ImageWidth, opts.ImageHeight
		if imgW <= 0 || imgH <= 0 {
			imgW, imgH, err = raster.PixelSize(path)
			if err != nil {
				return nil, err
			}
		}
		bbox = model.FitAspect(bbox, imgW, imgH)
	}

	// Placeholder bookkeeping. Skipped when the picture goes into a
	// placeholder (it must stay available) and the sentinel fill is skipped
	// in the replace flow (the deleted picture already freed the spot).
	var filled []automation.Shape
	if !usedPlaceholder {
		if opts.DeletePlaceholders {
			if err := placeholder.DeleteEmpty(slide); err != nil {
				return nil, err
			}
		} else if !replacing {
			filled, err = placeholder.FillEmpty(slide)
			if err != nil {
				return nil, err
			}
		}
	}

	shape, err := slide.AddPicture(path, bbox)
	if err != nil {
		if len(filled) > 0 {
			_ = placeholder.Revert(filled)
		}
		return nil, fmt.Errorf("inserting picture: %w", err)
	}

	if targetZ > 0 {
		// Bounded: the shape count caps the number of backward moves, so
		// the loop terminates even if the host's z-order semantics drift.
		shapes, err := slide.Shapes()
		if err != nil {
			return warnings, err
		}
		for moves := 0; moves < len(shapes) && shape.ZOrderPosition() > targetZ; moves++ {
			if err := shape.ZOrder(automation.SendBackward); err != nil {
				return warnings, fmt.Errorf("restoring z-order: %w", err)
			}
		}
	}

	if realized := shape.Rect(); realized.MaxComponentDiff(bbox) > placementTolerance {
		warnings = append(warnings, Warning{
			Kind: WarnPlacementMismatch,
			Message: fmt.Sprintf(
				"bbox of the inserted figure was not respected: (%.1f, %.1f, %.1f, %.1f) instead of (%.1f, %.1f, %.1f, %.1f); "+
					"the figure may have landed inside a placeholder, consider enabling DeletePlaceholders",
				realized.X, realized.Y, realized.Width, realized.Height,
				bbox.X, bbox.Y, bbox.Width, bbox.Height),
		})
	}

	if len(filled) > 0 {
		if err := placeholder.Revert(filled); err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}
