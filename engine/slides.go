package engine

import (
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/model"
	"github.com/tsawler/slidefig/placeholder"
)

// TitleToFront brings every title, subtitle, and body placeholder of the
// slide to the front of the z-order.
func (e *Engine) TitleToFront(slideNo int) error {
	slide, err := e.slide(slideNo)
	if err != nil {
		return err
	}
	phs, err := placeholder.Placeholders(slide)
	if err != nil {
		return err
	}
	for _, p := range phs {
		if !p.PlaceholderKind().IsTitleLike() {
			continue
		}
		if err := p.ZOrder(automation.BringToFront); err != nil {
			return fmt.Errorf("bringing placeholder to front: %w", err)
		}
	}
	return nil
}

// SetTitle sets the slide's title text. When the slide contains multiple
// title placeholders, only the first one is set. A missing title placeholder
// produces a warning, not an error.
func (e *Engine) SetTitle(title string, slideNo int) ([]Warning, error) {
	return e.setPlaceholderText(automation.PlaceholderTitle, title, slideNo,
		Warning{Kind: WarnNoTitlePlaceholder, Message: "no title placeholders were found on the given slide"})
}

// SetSubtitle sets the slide's subtitle text, analogous to SetTitle.
func (e *Engine) SetSubtitle(subtitle string, slideNo int) ([]Warning, error) {
	return e.setPlaceholderText(automation.PlaceholderSubtitle, subtitle, slideNo,
		Warning{Kind: WarnNoSubtitlePlaceholder, Message: "no subtitle placeholders were found on the given slide"})
}

func (e *Engine) setPlaceholderText(kind automation.PlaceholderKind, text string, slideNo int, missing Warning) ([]Warning, error) {
	slide, err := e.slide(slideNo)
	if err != nil {
		return nil, err
	}
	phs, err := placeholder.Placeholders(slide)
	if err != nil {
		return nil, err
	}
	for _, p := range phs {
		if p.PlaceholderKind() != kind {
			continue
		}
		if err := p.SetText(norm.NFC.String(text)); err != nil {
			return nil, fmt.Errorf("setting placeholder text: %w", err)
		}
		return nil, nil
	}
	return []Warning{missing}, nil
}

// AddSlide inserts a new slide after slide number after, using the layout of
// slide layoutAs, and returns the new slide's number. Zero values default to
// the active slide (after) and to after itself (layoutAs). With makeActive
// the new slide is brought into focus.
func (e *Engine) AddSlide(after, layoutAs int, makeActive bool) (int, error) {
	if after == 0 {
		s, err := e.app.ActiveSlide()
		if err != nil {
			return 0, err
		}
		after = s.Number()
	}
	if layoutAs == 0 {
		layoutAs = after
	}
	pres, err := e.app.ActivePresentation()
	if err != nil {
		return 0, err
	}
	slide, err := pres.AddSlide(after+1, layoutAs)
	if err != nil {
		return 0, fmt.Errorf("adding slide: %w", err)
	}
	n := slide.Number()
	if makeActive {
		if err := e.app.GotoSlide(n); err != nil {
			return n, err
		}
	}
	return n, nil
}

// GotoSlide changes the active slide.
func (e *Engine) GotoSlide(n int) error {
	return e.app.GotoSlide(n)
}

// ShapePosition is the reported geometry of one shape, rounded to 0.1 slide
// units.
type ShapePosition struct {
	X      float64              `json:"x"`
	Y      float64              `json:"y"`
	Width  float64              `json:"width"`
	Height float64              `json:"height"`
	Kind   automation.ShapeKind `json:"type"`
}

// ShapePositions returns the geometry of every shape on the slide.
func (e *Engine) ShapePositions(slideNo int) ([]ShapePosition, error) {
	slide, err := e.slide(slideNo)
	if err != nil {
		return nil, err
	}
	shapes, err := slide.Shapes()
	if err != nil {
		return nil, err
	}
	out := make([]ShapePosition, 0, len(shapes))
	for _, sh := range shapes {
		r := sh.Rect()
		out = append(out, ShapePosition{
			X:      roundTenth(r.X),
			Y:      roundTenth(r.Y),
			Width:  roundTenth(r.Width),
			Height: roundTenth(r.Height),
			Kind:   sh.Kind(),
		})
	}
	return out, nil
}

// ImagePositions returns the geometry of every picture on the slide,
// including occupied picture placeholders.
func (e *Engine) ImagePositions(slideNo int) ([]model.Rect, error) {
	slide, err := e.slide(slideNo)
	if err != nil {
		return nil, err
	}
	pics, err := placeholder.Pictures(slide)
	if err != nil {
		return nil, err
	}
	out := make([]model.Rect, 0, len(pics))
	for _, p := range pics {
		r := p.Rect()
		out = append(out, model.Abs(
			roundTenth(r.X), roundTenth(r.Y),
			roundTenth(r.Width), roundTenth(r.Height)))
	}
	return out, nil
}

// SlideDimensions returns the active presentation's slide width and height.
func (e *Engine) SlideDimensions() (float64, float64, error) {
	return e.dims()
}

// Notes returns the speaker notes of every slide, NFC-normalized.
func (e *Engine) Notes() ([]string, error) {
	pres, err := e.app.ActivePresentation()
	if err != nil {
		return nil, err
	}
	notes, err := pres.Notes()
	if err != nil {
		return nil, err
	}
	for i, n := range notes {
		notes[i] = norm.NFC.String(n)
	}
	return notes, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
