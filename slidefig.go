// Package slidefig provides a fluent API for placing figures into the slides
// of a live presentation.
//
// Basic usage:
//
//	s := slidefig.Connect(backend)
//	warnings, err := s.Figure("plot.png").Add()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", slidefig.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := s.Figure("plot.png").
//	    Preset("TopLeftXL").
//	    Slide(2).
//	    NoAspect().
//	    Add()
//
// For advanced use cases, the lower-level engine package is also available.
package slidefig

import (
	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/engine"
	"github.com/tsawler/slidefig/model"
)

// Version is the connector version reported by the relay home page.
const Version = "0.3.0"

// DocsURL points at the project documentation.
const DocsURL = "https://github.com/tsawler/slidefig"

// Session is a connection to a presentation host. All operations target the
// active presentation of the backend it was created over.
type Session struct {
	app automation.Application
	eng *engine.Engine
}

// Connect creates a session over an automation backend.
//
// Example:
//
//	deck, err := pptxfile.Open("talk.pptx")
//	if err != nil {
//	    // handle error
//	}
//	defer deck.Close()
//	s := slidefig.Connect(deck)
func Connect(app automation.Application) *Session {
	return &Session{
		app: app,
		eng: engine.New(app),
	}
}

// Figure starts a fluent placement of the raster file at path. The terminal
// operations are Add and Replace.
func (s *Session) Figure(path string) *Figure {
	return &Figure{
		session: s,
		path:    path,
		intent:  engine.Auto(),
		add:     engine.DefaultAddOptions(),
		replace: engine.DefaultReplaceOptions(),
	}
}

// TitleToFront brings the slide's title placeholders in front of everything
// else. Slide number 0 targets the active slide.
func (s *Session) TitleToFront(slideNo int) error {
	return s.eng.TitleToFront(slideNo)
}

// SetTitle sets the slide's title text. A slide without a title placeholder
// yields a warning, not an error.
func (s *Session) SetTitle(title string, slideNo int) ([]Warning, error) {
	return s.eng.SetTitle(title, slideNo)
}

// SetSubtitle sets the slide's subtitle text.
func (s *Session) SetSubtitle(subtitle string, slideNo int) ([]Warning, error) {
	return s.eng.SetSubtitle(subtitle, slideNo)
}

// AddSlide inserts a new slide after slide number after (0 means after the
// active slide), laid out like slide layoutAs (0 means like after), and
// returns the new slide's number.
func (s *Session) AddSlide(after, layoutAs int, makeActive bool) (int, error) {
	return s.eng.AddSlide(after, layoutAs, makeActive)
}

// GotoSlide changes the active slide.
func (s *Session) GotoSlide(n int) error {
	return s.eng.GotoSlide(n)
}

// ShapePositions returns the geometry of every shape on the slide, rounded
// to 0.1 slide units.
func (s *Session) ShapePositions(slideNo int) ([]engine.ShapePosition, error) {
	return s.eng.ShapePositions(slideNo)
}

// ImagePositions returns the geometry of every picture on the slide.
func (s *Session) ImagePositions(slideNo int) ([]model.Rect, error) {
	return s.eng.ImagePositions(slideNo)
}

// SlideDimensions returns the presentation's slide width and height.
func (s *Session) SlideDimensions() (float64, float64, error) {
	return s.eng.SlideDimensions()
}

// Notes returns the speaker notes of every slide.
func (s *Session) Notes() ([]string, error) {
	return s.eng.Notes()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	n := slidefig.Must(s.AddSlide(0, 0, true))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
