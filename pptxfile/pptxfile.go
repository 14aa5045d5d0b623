// Package pptxfile provides a read-only presentation backend over a saved
// .pptx archive (Office Open XML). It implements the automation interfaces
// for inspection operations: slide and shape enumeration with geometry,
// placeholder classification, and speaker notes. Every mutating operation
// returns automation.ErrReadOnly.
package pptxfile

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/model"
)

// emuPerPoint converts Office Open XML geometry (English Metric Units) to
// the point-based slide units the automation contract uses.
const emuPerPoint = 12700

// Document is a parsed .pptx archive. It implements automation.Application
// and automation.Presentation. The "active" slide is a cursor that starts at
// slide 1 and moves with GotoSlide; it never touches the file.
type Document struct {
	zr        *zip.ReadCloser
	widthEMU  int64
	heightEMU int64
	slides    []*slide
	current   int
}

type slide struct {
	number int
	shapes []*Shape
	notes  string
}

// Open parses the presentation at filename. The returned Document holds the
// archive open until Close is called.
func Open(filename string) (*Document, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	d := &Document{zr: zr, current: 1}
	if err := d.parse(); err != nil {
		zr.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying archive.
func (d *Document) Close() error {
	if d.zr != nil {
		err := d.zr.Close()
		d.zr = nil
		return err
	}
	return nil
}

// Available reports whether the document was opened successfully.
func (d *Document) Available() error {
	if d.zr == nil || len(d.slides) == 0 {
		return automation.ErrUnavailable
	}
	return nil
}

// ActivePresentation returns the document itself.
func (d *Document) ActivePresentation() (automation.Presentation, error) {
	return d, nil
}

// ActiveSlide returns the slide the cursor points at.
func (d *Document) ActiveSlide() (automation.Slide, error) {
	return d.Slide(d.current)
}

// GotoSlide moves the cursor. The file itself is not modified.
func (d *Document) GotoSlide(n int) error {
	if n < 1 || n > len(d.slides) {
		return fmt.Errorf("slide %d out of range (1-%d)", n, len(d.slides))
	}
	d.current = n
	return nil
}

// SlideDimensions returns the slide size in points.
func (d *Document) SlideDimensions() (float64, float64, error) {
	return float64(d.widthEMU) / emuPerPoint, float64(d.heightEMU) / emuPerPoint, nil
}

// SlideCount returns the number of slides.
func (d *Document) SlideCount() (int, error) {
	return len(d.slides), nil
}

// Slide returns the slide with the given 1-based number.
func (d *Document) Slide(n int) (automation.Slide, error) {
	if n < 1 || n > len(d.slides) {
		return nil, fmt.Errorf("slide %d out of range (1-%d)", n, len(d.slides))
	}
	return d.slides[n-1], nil
}

// AddSlide is not supported on a saved archive.
func (d *Document) AddSlide(position, layoutAs int) (automation.Slide, error) {
	return nil, automation.ErrReadOnly
}

// Notes returns the speaker notes of every slide, in slide order.
func (d *Document) Notes() ([]string, error) {
	out := make([]string, len(d.slides))
	for i, s := range d.slides {
		out[i] = s.notes
	}
	return out, nil
}

func (s *slide) Number() int { return s.number }

func (s *slide) Shapes() ([]automation.Shape, error) {
	out := make([]automation.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = sh
	}
	return out, nil
}

func (s *slide) AddPicture(filename string, r model.Rect) (automation.Shape, error) {
	return nil, automation.ErrReadOnly
}

// Shape is a single shape read from a slide part. Archive shapes are listed
// back to front, so the z position equals the document-order index.
type Shape struct {
	rect      model.Rect
	kind      automation.ShapeKind
	phKind    automation.PlaceholderKind
	contained automation.ShapeKind
	hasText   bool
	text      string
	z         int
}

func (sh *Shape) Rect() model.Rect                            { return sh.rect }
func (sh *Shape) Kind() automation.ShapeKind                  { return sh.kind }
func (sh *Shape) PlaceholderKind() automation.PlaceholderKind { return sh.phKind }
func (sh *Shape) ContainedKind() automation.ShapeKind         { return sh.contained }
func (sh *Shape) HasTextFrame() bool                          { return sh.hasText }
func (sh *Shape) Text() string                                { return sh.text }
func (sh *Shape) ZOrderPosition() int                         { return sh.z }

func (sh *Shape) SetText(string) error              { return automation.ErrReadOnly }
func (sh *Shape) Delete() error                     { return automation.ErrReadOnly }
func (sh *Shape) ZOrder(automation.ZOrderCmd) error { return automation.ErrReadOnly }

func (d *Document) parse() error {
	data, err := d.partContent("ppt/presentation.xml")
	if err != nil {
		return fmt.Errorf("reading presentation part: %w", err)
	}
	var pres presentationXML
	if err := xml.Unmarshal(data, &pres); err != nil {
		return fmt.Errorf("parsing presentation part: %w", err)
	}
	if pres.SlideSz != nil {
		d.widthEMU = pres.SlideSz.Cx
		d.heightEMU = pres.SlideSz.Cy
	}

	var slideParts []string
	for _, f := range d.zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") &&
			strings.HasSuffix(f.Name, ".xml") &&
			!strings.Contains(f.Name, "_rels") {
			slideParts = append(slideParts, f.Name)
		}
	}
	if len(slideParts) == 0 {
		return fmt.Errorf("no slides found in presentation")
	}
	sort.Slice(slideParts, func(i, j int) bool {
		return slidePartNumber(slideParts[i]) < slidePartNumber(slideParts[j])
	})

	for i, part := range slideParts {
		s, err := d.parseSlide(part, i+1)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", part, err)
		}
		s.notes = d.slideNotes(part)
		d.slides = append(d.slides, s)
	}
	return nil
}

func slidePartNumber(part string) int {
	name := strings.TrimPrefix(part, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var n int
	fmt.Sscanf(name, "%d", &n)
	return n
}

func (d *Document) partContent(name string) ([]byte, error) {
	for _, f := range d.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part not found: %s", name)
}

// parseSlide walks the shape tree token by token so that the document order,
// which is the z-order from back to front, survives into the shape list.
func (d *Document) parseSlide(part string, number int) (*slide, error) {
	data, err := d.partContent(part)
	if err != nil {
		return nil, err
	}

	s := &slide{number: number}
	dec := xml.NewDecoder(bytes.NewReader(data))
	inTree := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "spTree" {
			inTree = true
			continue
		}
		if !inTree {
			continue
		}
		var sh *Shape
		switch start.Name.Local {
		case "sp":
			var sp spXML
			if err := dec.DecodeElement(&sp, &start); err != nil {
				return nil, err
			}
			sh = shapeFromSp(&sp)
		case "pic":
			var pic picXML
			if err := dec.DecodeElement(&pic, &start); err != nil {
				return nil, err
			}
			sh = shapeFromPic(&pic)
		case "graphicFrame":
			var gf graphicFrameXML
			if err := dec.DecodeElement(&gf, &start); err != nil {
				return nil, err
			}
			sh = shapeFromFrame(&gf)
		default:
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		}
		if sh != nil {
			sh.z = len(s.shapes) + 1
			s.shapes = append(s.shapes, sh)
		}
	}
	return s, nil
}

func shapeFromSp(sp *spXML) *Shape {
	sh := &Shape{
		rect:      rectFromXfrm(sp.SpPr.Xfrm),
		kind:      automation.ShapeAuto,
		contained: automation.ShapeAuto,
	}
	if sp.TxBody != nil {
		sh.hasText = true
		sh.text = bodyText(sp.TxBody)
		sh.kind = automation.ShapeTextBox
		sh.contained = automation.ShapeTextBox
	}
	if sp.NvSpPr.NvPr.Ph != nil {
		sh.kind = automation.ShapePlaceholder
		sh.phKind = placeholderKind(sp.NvSpPr.NvPr.Ph.Type)
		// An empty placeholder contains nothing of its own.
		sh.contained = automation.ShapeAuto
	}
	return sh
}

func shapeFromPic(pic *picXML) *Shape {
	sh := &Shape{
		rect:      rectFromXfrm(pic.SpPr.Xfrm),
		kind:      automation.ShapePicture,
		contained: automation.ShapePicture,
	}
	if pic.NvPicPr.NvPr.Ph != nil {
		// A picture dropped into a layout placeholder.
		sh.kind = automation.ShapePlaceholder
		sh.phKind = placeholderKind(pic.NvPicPr.NvPr.Ph.Type)
	}
	return sh
}

func shapeFromFrame(gf *graphicFrameXML) *Shape {
	sh := &Shape{
		rect:      rectFromXfrm(gf.Xfrm),
		kind:      automation.ShapeChart,
		contained: automation.ShapeChart,
	}
	if strings.HasSuffix(gf.Graphic.GraphicData.URI, "/table") {
		sh.kind = automation.ShapeTable
		sh.contained = automation.ShapeTable
	}
	if gf.NvGraphicFramePr.NvPr.Ph != nil {
		sh.phKind = placeholderKind(gf.NvGraphicFramePr.NvPr.Ph.Type)
		sh.contained = sh.kind
		sh.kind = automation.ShapePlaceholder
	}
	return sh
}

// rectFromXfrm converts EMU geometry to points. Shapes that inherit their
// geometry from the layout carry no xfrm and report a zero rectangle.
func rectFromXfrm(x *xfrmXML) model.Rect {
	if x == nil {
		return model.Abs(0, 0, 0, 0)
	}
	return model.Abs(
		float64(x.Off.X)/emuPerPoint,
		float64(x.Off.Y)/emuPerPoint,
		float64(x.Ext.Cx)/emuPerPoint,
		float64(x.Ext.Cy)/emuPerPoint,
	)
}

func bodyText(body *txBodyXML) string {
	var b strings.Builder
	for _, p := range body.P {
		var line strings.Builder
		for _, r := range p.R {
			line.WriteString(r.T)
		}
		for _, f := range p.Fld {
			line.WriteString(f.T)
		}
		t := strings.TrimSpace(line.String())
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t)
	}
	return b.String()
}

// placeholderKind maps an OOXML ph type attribute to the automation
// enumeration. An empty type attribute means a body placeholder.
func placeholderKind(t string) automation.PlaceholderKind {
	switch t {
	case "title":
		return automation.PlaceholderTitle
	case "ctrTitle":
		return automation.PlaceholderCenterTitle
	case "subTitle":
		return automation.PlaceholderSubtitle
	case "body", "":
		return automation.PlaceholderBody
	case "pic":
		return automation.PlaceholderPicture
	case "obj":
		return automation.PlaceholderObject
	case "chart":
		return automation.PlaceholderChart
	case "tbl":
		return automation.PlaceholderTable
	case "media":
		return automation.PlaceholderMediaClip
	case "dt":
		return automation.PlaceholderDate
	case "ftr":
		return automation.PlaceholderFooter
	case "hdr":
		return automation.PlaceholderHeader
	case "sldNum":
		return automation.PlaceholderSlideNumber
	default:
		return automation.PlaceholderObject
	}
}

// slideNotes resolves the slide's notesSlide relationship and extracts the
// note text, skipping the slide-image placeholder.
func (d *Document) slideNotes(slidePart string) string {
	relsPart := path.Join(path.Dir(slidePart), "_rels", path.Base(slidePart)+".rels")
	data, err := d.partContent(relsPart)
	if err != nil {
		return ""
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return ""
	}

	var notesPart string
	for _, rel := range rels.Relationship {
		if strings.Contains(rel.Type, "notesSlide") {
			notesPart = rel.Target
			break
		}
	}
	if notesPart == "" {
		return ""
	}
	if strings.HasPrefix(notesPart, "../") {
		notesPart = "ppt/" + strings.TrimPrefix(notesPart, "../")
	} else if !strings.HasPrefix(notesPart, "ppt/") {
		notesPart = "ppt/slides/" + notesPart
	}

	data, err = d.partContent(notesPart)
	if err != nil {
		return ""
	}
	var notes notesSlideXML
	if err := xml.Unmarshal(data, &notes); err != nil {
		return ""
	}

	var b strings.Builder
	for _, sp := range notes.CSld.SpTree.Sp {
		if sp.NvSpPr.NvPr.Ph != nil && sp.NvSpPr.NvPr.Ph.Type == "sldImg" {
			continue
		}
		if sp.TxBody == nil {
			continue
		}
		t := bodyText(sp.TxBody)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t)
	}
	return b.String()
}
