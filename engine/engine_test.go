package engine

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/memory"
	"github.com/tsawler/slidefig/model"
	"github.com/tsawler/slidefig/preset"
)

// writePNG writes a w x h test raster and returns its path.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fig.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func noAspect() AddOptions {
	o := DefaultAddOptions()
	o.KeepAspect = false
	return o
}

func pictures(t *testing.T, s *memory.Slide) []automation.Shape {
	t.Helper()
	shapes, err := s.Shapes()
	if err != nil {
		t.Fatal(err)
	}
	var pics []automation.Shape
	for _, sh := range shapes {
		if sh.Kind() == automation.ShapePicture {
			pics = append(pics, sh)
		}
	}
	return pics
}

func TestAddFigure_AutoUsesEmptyPicturePlaceholder(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	s.AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 0, 960, 60), true)
	s.AddPlaceholder(automation.PlaceholderPicture, model.NewRect(100, 100, 200, 150), true)
	s.AddPlaceholder(automation.PlaceholderBody, model.NewRect(400, 100, 200, 150), true)

	eng := New(h)
	warnings, err := eng.AddFigure(writePNG(t, 4, 3), Auto(), noAspect())
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	pics := pictures(t, s)
	if len(pics) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(pics))
	}
	want := model.NewRect(100, 100, 200, 150)
	if pics[0].Rect().MaxComponentDiff(want) > 1e-9 {
		t.Errorf("picture at %+v, want %+v", pics[0].Rect(), want)
	}

	// All other placeholders must be untouched: no deletion, no sentinel.
	shapes, _ := s.Shapes()
	if len(shapes) != 4 {
		t.Errorf("expected 4 shapes (3 placeholders + picture), got %d", len(shapes))
	}
	for _, sh := range shapes {
		if sh.Kind() == automation.ShapePlaceholder && sh.Text() != "" {
			t.Errorf("placeholder %v was modified", sh.PlaceholderKind())
		}
	}
}

func TestAddFigure_AutoFallsBackToCenter(t *testing.T) {
	h := memory.New(960, 540)
	eng := New(h)
	if _, err := eng.AddFigure(writePNG(t, 4, 3), Auto(), noAspect()); err != nil {
		t.Fatal(err)
	}

	pics := pictures(t, h.MustSlide(1))
	if len(pics) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(pics))
	}
	center, _ := preset.Resolve("center")
	want := preset.ScaleToSlide(center, 960, 540)
	if pics[0].Rect().MaxComponentDiff(want) > 1e-9 {
		t.Errorf("picture at %+v, want %+v", pics[0].Rect(), want)
	}
}

func TestAddFigure_FullPresetScalesToSlide(t *testing.T) {
	h := memory.New(9144000, 6858000)
	eng := New(h)
	if _, err := eng.AddFigure(writePNG(t, 4, 3), AtPreset("full"), noAspect()); err != nil {
		t.Fatal(err)
	}
	pics := pictures(t, h.MustSlide(1))
	want := model.NewRect(0, 0, 9144000, 6858000)
	if pics[0].Rect().MaxComponentDiff(want) > 1e-9 {
		t.Errorf("picture at %+v, want %+v", pics[0].Rect(), want)
	}
}

func TestAddFigure_InvalidPreset(t *testing.T) {
	h := memory.New(960, 540)
	eng := New(h)
	path := writePNG(t, 4, 3)

	_, err := eng.AddFigure(path, AtPreset("banana"), noAspect())
	if !errors.Is(err, preset.ErrInvalidPreset) {
		t.Fatalf("expected ErrInvalidPreset, got %v", err)
	}
	// No mutation happened.
	if len(pictures(t, h.MustSlide(1))) != 0 {
		t.Error("slide mutated despite validation error")
	}
	// The temp raster is cleaned up on failure paths too.
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("raster file not removed after failure")
	}
}

func TestAddFigure_KeepAspectProbesRaster(t *testing.T) {
	h := memory.New(1000, 500)
	eng := New(h)

	// 100x100 image into the full slide [0,0,1000,500]: height is kept,
	// width shrinks to 500, centered at x=250.
	opts := DefaultAddOptions()
	if _, err := eng.AddFigure(writePNG(t, 100, 100), AtPreset("full"), opts); err != nil {
		t.Fatal(err)
	}
	pics := pictures(t, h.MustSlide(1))
	want := model.NewRect(250, 0, 500, 500)
	if pics[0].Rect().MaxComponentDiff(want) > 1e-9 {
		t.Errorf("picture at %+v, want %+v", pics[0].Rect(), want)
	}
}

func TestAddFigure_KeepAspectSuppliedDimensions(t *testing.T) {
	h := memory.New(1000, 500)
	eng := New(h)

	// Supplied 4:1 dimensions override the file's own 1:1 pixels.
	opts := DefaultAddOptions()
	opts.ImageWidth = 4
	opts.ImageHeight = 1
	if _, err := eng.AddFigure(writePNG(t, 100, 100), AtPreset("full"), opts); err != nil {
		t.Fatal(err)
	}
	pics := pictures(t, h.MustSlide(1))
	want := model.NewRect(0, 125, 1000, 250)
	if pics[0].Rect().MaxComponentDiff(want) > 1e-9 {
		t.Errorf("picture at %+v, want %+v", pics[0].Rect(), want)
	}
}

func TestAddFigure_ReplaceThresholdExclusive(t *testing.T) {
	// A candidate covering exactly 10% of its own area with the target is
	// NOT replaced; 15% is.
	t.Run("at threshold", func(t *testing.T) {
		h := memory.New(960, 540)
		s := h.MustSlide(1)
		s.AddPictureShape(model.NewRect(90, 0, 100, 100)) // overlap 10x100 = 10%

		eng := New(h)
		opts := noAspect()
		opts.Replace = true
		if _, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(0, 0, 100, 100)), opts); err != nil {
			t.Fatal(err)
		}
		if got := len(pictures(t, s)); got != 2 {
			t.Errorf("expected ordinary insertion (2 pictures), got %d", got)
		}
	})

	t.Run("above threshold", func(t *testing.T) {
		h := memory.New(960, 540)
		s := h.MustSlide(1)
		old := s.AddPictureShape(model.NewRect(85, 0, 100, 100)) // overlap 15%
		oldRect := old.Rect()

		eng := New(h)
		opts := noAspect()
		opts.Replace = true
		if _, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(0, 0, 100, 100)), opts); err != nil {
			t.Fatal(err)
		}
		pics := pictures(t, s)
		if len(pics) != 1 {
			t.Fatalf("expected replacement (1 picture), got %d", len(pics))
		}
		// The original target rectangle is ignored in favor of the
		// replaced picture's rectangle.
		if pics[0].Rect().MaxComponentDiff(oldRect) > 1e-9 {
			t.Errorf("picture at %+v, want replaced rect %+v", pics[0].Rect(), oldRect)
		}
	})
}

func TestAddFigure_ReplacePicksGreatestOverlap(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	s.AddPictureShape(model.NewRect(80, 0, 100, 100))       // 20% overlap
	big := s.AddPictureShape(model.NewRect(0, 0, 100, 100)) // 100% overlap
	bigRect := big.Rect()

	eng := New(h)
	opts := noAspect()
	opts.Replace = true
	if _, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(0, 0, 100, 100)), opts); err != nil {
		t.Fatal(err)
	}
	pics := pictures(t, s)
	if len(pics) != 2 {
		t.Fatalf("expected 2 pictures, got %d", len(pics))
	}
	var foundAtBig bool
	for _, p := range pics {
		if p.Rect().MaxComponentDiff(bigRect) < 1e-9 {
			foundAtBig = true
		}
	}
	if !foundAtBig {
		t.Error("the most-covered picture was not the one replaced")
	}
}

func TestAddFigure_FillAndRevertPlaceholders(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	body := s.AddPlaceholder(automation.PlaceholderObject, model.NewRect(10, 10, 100, 100), true)

	eng := New(h)
	opts := noAspect()
	opts.DeletePlaceholders = false
	if _, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(200, 200, 100, 100)), opts); err != nil {
		t.Fatal(err)
	}

	// The placeholder survives and the sentinel has been reverted.
	shapes, _ := s.Shapes()
	if len(shapes) != 2 {
		t.Fatalf("expected placeholder + picture, got %d shapes", len(shapes))
	}
	if body.Text() != "" {
		t.Errorf("sentinel text not reverted: %q", body.Text())
	}
}

func TestAddFigure_DeletePlaceholders(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	s.AddPlaceholder(automation.PlaceholderTitle, model.NewRect(0, 0, 960, 60), true)
	s.AddPlaceholder(automation.PlaceholderObject, model.NewRect(10, 100, 100, 100), true)

	eng := New(h)
	if _, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(200, 200, 100, 100)), noAspect()); err != nil {
		t.Fatal(err)
	}

	shapes, _ := s.Shapes()
	if len(shapes) != 2 {
		t.Fatalf("expected title + picture after placeholder deletion, got %d shapes", len(shapes))
	}
	for _, sh := range shapes {
		if sh.PlaceholderKind() == automation.PlaceholderObject {
			t.Error("empty object placeholder should have been deleted")
		}
	}
}

func TestAddFigure_TargetZOrderRestored(t *testing.T) {
	h := memory.New(960, 540)
	s := h.MustSlide(1)
	s.AddPictureShape(model.NewRect(0, 0, 50, 50))
	s.AddPictureShape(model.NewRect(100, 0, 50, 50))
	s.AddPictureShape(model.NewRect(200, 0, 50, 50))

	eng := New(h)
	opts := noAspect()
	opts.TargetZOrder = 2
	if _, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(300, 0, 50, 50)), opts); err != nil {
		t.Fatal(err)
	}

	for _, p := range pictures(t, s) {
		if p.Rect().X == 300 && p.ZOrderPosition() != 2 {
			t.Errorf("expected inserted picture at z 2, got %d", p.ZOrderPosition())
		}
	}
}

func TestAddFigure_PlacementMismatchWarning(t *testing.T) {
	h := memory.New(960, 540)
	// Simulate a host that snaps the picture somewhere else.
	h.AdjustInsert = func(r model.Rect) model.Rect {
		r.X += 5
		return r
	}
	eng := New(h)
	warnings, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(100, 100, 200, 100)), noAspect())
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnPlacementMismatch {
		t.Fatalf("expected one placement mismatch warning, got %v", warnings)
	}
	// Non-fatal: the picture is still there.
	if len(pictures(t, h.MustSlide(1))) != 1 {
		t.Error("picture missing after mismatch warning")
	}
}

func TestAddFigure_RemovesRasterOnSuccess(t *testing.T) {
	h := memory.New(960, 540)
	eng := New(h)
	path := writePNG(t, 4, 3)
	if _, err := eng.AddFigure(path, At(model.Abs(0, 0, 100, 100)), noAspect()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("raster file not removed after success")
	}
}

func TestAddFigure_KeepFile(t *testing.T) {
	h := memory.New(960, 540)
	eng := New(h)
	path := writePNG(t, 4, 3)
	opts := noAspect()
	opts.KeepFile = true
	if _, err := eng.AddFigure(path, At(model.Abs(0, 0, 100, 100)), opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("raster file should have been kept: %v", err)
	}
}

func TestAddFigure_NumberedSlide(t *testing.T) {
	h := memory.New(960, 540)
	if _, err := h.AddSlide(2, 1); err != nil {
		t.Fatal(err)
	}
	eng := New(h)
	opts := noAspect()
	opts.SlideNo = 2
	if _, err := eng.AddFigure(writePNG(t, 4, 3), At(model.Abs(0, 0, 100, 100)), opts); err != nil {
		t.Fatal(err)
	}
	if len(pictures(t, h.MustSlide(1))) != 0 {
		t.Error("picture landed on slide 1")
	}
	if len(pictures(t, h.MustSlide(2))) != 1 {
		t.Error("picture missing on slide 2")
	}
}
