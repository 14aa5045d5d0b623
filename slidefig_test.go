package slidefig_test

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/slidefig"
	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/memory"
	"github.com/tsawler/slidefig/model"
	"github.com/tsawler/slidefig/preset"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "figure.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFigureAddIntoPlaceholder(t *testing.T) {
	host := memory.New(960, 540)
	target := model.NewRect(100, 100, 200, 150)
	host.MustSlide(1).AddPlaceholder(automation.PlaceholderPicture, target, false)

	s := slidefig.Connect(host)
	warnings, err := s.Figure(writePNG(t, 4, 3)).NoAspect().Add()
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", slidefig.FormatWarnings(warnings))
	}

	positions, err := s.ImagePositions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(positions))
	}
	got := positions[0]
	if got.X != 100 || got.Y != 100 || got.Width != 200 || got.Height != 150 {
		t.Errorf("picture not placed into the placeholder: %+v", got)
	}
}

func TestFigureAddAtPreset(t *testing.T) {
	host := memory.New(960, 540)
	s := slidefig.Connect(host)

	if _, err := s.Figure(writePNG(t, 4, 3)).Preset("full").NoAspect().Add(); err != nil {
		t.Fatal(err)
	}
	positions, _ := s.ImagePositions(0)
	if len(positions) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(positions))
	}
	got := positions[0]
	if got.X != 0 || got.Y != 0 || got.Width != 960 || got.Height != 540 {
		t.Errorf("full preset placement: %+v", got)
	}
}

func TestFigureInvalidPreset(t *testing.T) {
	s := slidefig.Connect(memory.New(960, 540))
	_, err := s.Figure("whatever.png").Preset("banana").Add()
	if !errors.Is(err, preset.ErrInvalidPreset) {
		t.Fatalf("expected ErrInvalidPreset, got %v", err)
	}
}

func TestFigureChainDoesNotMutateParent(t *testing.T) {
	host := memory.New(960, 540)
	s := slidefig.Connect(host)

	base := s.Figure(writePNG(t, 4, 3)).NoAspect()
	base.Preset("full") // discarded fork
	if _, err := base.At(10, 10, 100, 100).Add(); err != nil {
		t.Fatal(err)
	}
	positions, _ := s.ImagePositions(0)
	if positions[0].X != 10 || positions[0].Width != 100 {
		t.Errorf("fork leaked into parent chain: %+v", positions[0])
	}
}

func TestFigureReplace(t *testing.T) {
	host := memory.New(960, 540)
	slide := host.MustSlide(1)
	slide.AddPictureShape(model.NewRect(100, 100, 50, 50))
	slide.AddPictureShape(model.NewRect(500, 100, 50, 50))

	s := slidefig.Connect(host)
	if _, err := s.Figure(writePNG(t, 4, 3)).Left(-1).NoAspect().Replace(); err != nil {
		t.Fatal(err)
	}
	positions, _ := s.ImagePositions(0)
	if len(positions) != 2 {
		t.Fatalf("expected 2 pictures, got %d", len(positions))
	}
}

func TestSessionSlideOperations(t *testing.T) {
	host := memory.New(960, 540)
	host.MustSlide(1).AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 0, 960, 60), true)
	host.MustSlide(1).SetNotes("first")

	s := slidefig.Connect(host)
	if _, err := s.SetTitle("Results", 0); err != nil {
		t.Fatal(err)
	}

	n, err := s.AddSlide(0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("new slide number = %d", n)
	}

	notes, err := s.Notes()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 || notes[0] != "first" {
		t.Errorf("unexpected notes: %q", notes)
	}

	w, h, err := s.SlideDimensions()
	if err != nil {
		t.Fatal(err)
	}
	if w != 960 || h != 540 {
		t.Errorf("dimensions = %fx%f", w, h)
	}
}

func TestMust(t *testing.T) {
	s := slidefig.Connect(memory.New(960, 540))
	if n := slidefig.Must(s.AddSlide(0, 0, true)); n != 2 {
		t.Errorf("new slide number = %d", n)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an invalid preset")
		}
	}()
	slidefig.Must(s.Figure("whatever.png").Preset("banana").Add())
}

func TestFormatWarnings(t *testing.T) {
	if got := slidefig.FormatWarnings(nil); got != "" {
		t.Errorf("empty warnings formatted as %q", got)
	}
	s := slidefig.Connect(memory.New(960, 540))
	warnings, err := s.SetTitle("orphan", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := slidefig.FormatWarnings(warnings); got == "" {
		t.Error("expected a non-empty formatted warning")
	}
}
