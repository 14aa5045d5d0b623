package engine

import (
	"testing"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/memory"
	"github.com/tsawler/slidefig/model"
)

func TestSetTitle(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	title := s.AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 0, 960, 60), true)
	s.AddPlaceholder(automation.PlaceholderSubtitle, model.NewRect(0, 70, 960, 40), true)

	eng := New(h)
	warnings, err := eng.SetTitle("Quarterly Results", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if title.Text() != "Quarterly Results" {
		t.Errorf("title = %q", title.Text())
	}
}

func TestSetTitle_NoPlaceholderWarns(t *testing.T) {
	h := memory.New(960, 540)
	eng := New(h)
	warnings, err := eng.SetTitle("Orphan", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnNoTitlePlaceholder {
		t.Errorf("expected missing-title warning, got %v", warnings)
	}
}

func TestSetSubtitle(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	sub := s.AddPlaceholder(automation.PlaceholderSubtitle, model.NewRect(0, 70, 960, 40), true)

	eng := New(h)
	if _, err := eng.SetSubtitle("FY2026", 0); err != nil {
		t.Fatal(err)
	}
	if sub.Text() != "FY2026" {
		t.Errorf("subtitle = %q", sub.Text())
	}
}

func TestSetTitle_OnlyFirstOfMultiple(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	first := s.AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 0, 960, 60), true)
	second := s.AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 70, 960, 60), true)

	eng := New(h)
	if _, err := eng.SetTitle("Once", 0); err != nil {
		t.Fatal(err)
	}
	if first.Text() != "Once" || second.Text() != "" {
		t.Errorf("first=%q second=%q", first.Text(), second.Text())
	}
}

func TestTitleToFront(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	title := s.AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 0, 960, 60), true)
	s.AddPictureShape(model.NewRect(0, 0, 400, 300))
	s.AddPictureShape(model.NewRect(100, 0, 400, 300))

	eng := New(h)
	if err := eng.TitleToFront(0); err != nil {
		t.Fatal(err)
	}
	if title.ZOrderPosition() != 3 {
		t.Errorf("expected title at the front (z 3), got %d", title.ZOrderPosition())
	}
}

func TestAddSlide(t *testing.T) {
	h := memory.New(960, 540)
	h.MustSlide(1).AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 0, 960, 60), true)

	eng := New(h)
	n, err := eng.AddSlide(0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected new slide number 2, got %d", n)
	}
	active, _ := h.ActiveSlide()
	if active.Number() != 2 {
		t.Errorf("expected active slide 2, got %d", active.Number())
	}
	// The new slide inherits the layout's placeholder skeleton.
	shapes, _ := h.MustSlide(2).Shapes()
	if len(shapes) != 1 || shapes[0].PlaceholderKind() != automation.PlaceholderTitle {
		t.Errorf("unexpected layout copy: %v", shapes)
	}
}

func TestShapeAndImagePositions(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	s.AddPictureShape(model.NewRect(10.04, 20.06, 100, 50))
	s.AddTextBox(model.NewRect(0, 0, 50, 20), "hello")

	eng := New(h)
	shapes, err := eng.ShapePositions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(shapes) != 2 {
		t.Fatalf("expected 2 shape positions, got %d", len(shapes))
	}
	if shapes[0].X != 10.0 || shapes[0].Y != 20.1 {
		t.Errorf("expected rounding to 0.1, got %+v", shapes[0])
	}
	if shapes[0].Kind != automation.ShapePicture {
		t.Errorf("unexpected kind %v", shapes[0].Kind)
	}

	images, err := eng.ImagePositions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 1 {
		t.Fatalf("expected 1 image position, got %d", len(images))
	}
}

func TestSlideDimensionsNotCached(t *testing.T) {
	h := memory.New(960, 540)
	eng := New(h)

	w, _, err := eng.SlideDimensions()
	if err != nil {
		t.Fatal(err)
	}
	if w != 960 {
		t.Errorf("expected width 960, got %f", w)
	}

	h.Resize(1280, 720)
	w, hgt, err := eng.SlideDimensions()
	if err != nil {
		t.Fatal(err)
	}
	if w != 1280 || hgt != 720 {
		t.Errorf("expected resized dimensions, got %fx%f", w, hgt)
	}
}

func TestNotes(t *testing.T) {
	h := memory.New(960, 540)
	h.MustSlide(1).SetNotes("speaker note")
	eng := New(h)
	notes, err := eng.Notes()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0] != "speaker note" {
		t.Errorf("unexpected notes: %v", notes)
	}
}
