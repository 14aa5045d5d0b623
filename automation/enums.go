package automation

// ShapeKind mirrors the MsoShapeType enumeration of the automation service.
type ShapeKind int

const (
	ShapeTypeMixed      ShapeKind = -2
	ShapeAuto           ShapeKind = 1
	ShapeCallout        ShapeKind = 2
	ShapeChart          ShapeKind = 3
	ShapeComment        ShapeKind = 4
	ShapeFreeform       ShapeKind = 5
	ShapeGroup          ShapeKind = 6
	ShapeEmbeddedOLE    ShapeKind = 7
	ShapeFormControl    ShapeKind = 8
	ShapeLine           ShapeKind = 9
	ShapeLinkedOLE      ShapeKind = 10
	ShapeLinkedPicture  ShapeKind = 11
	ShapeOLEControl     ShapeKind = 12
	ShapePicture        ShapeKind = 13
	ShapePlaceholder    ShapeKind = 14
	ShapeTextEffect     ShapeKind = 15
	ShapeMedia          ShapeKind = 16
	ShapeTextBox        ShapeKind = 17
	ShapeScriptAnchor   ShapeKind = 18
	ShapeTable          ShapeKind = 19
	ShapeCanvas         ShapeKind = 20
	ShapeDiagram        ShapeKind = 21
	ShapeInk            ShapeKind = 22
	ShapeInkComment     ShapeKind = 23
	ShapeIgxGraphic     ShapeKind = 24
)

// String returns the MSDN constant name for the shape kind.
func (k ShapeKind) String() string {
	names := map[ShapeKind]string{
		ShapeTypeMixed:     "msoShapeTypeMixed",
		ShapeAuto:          "msoAutoShape",
		ShapeCallout:       "msoCallout",
		ShapeChart:         "msoChart",
		ShapeComment:       "msoComment",
		ShapeFreeform:      "msoFreeform",
		ShapeGroup:         "msoGroup",
		ShapeEmbeddedOLE:   "msoEmbeddedOLEObject",
		ShapeFormControl:   "msoFormControl",
		ShapeLine:          "msoLine",
		ShapeLinkedOLE:     "msoLinkedOLEObject",
		ShapeLinkedPicture: "msoLinkedPicture",
		ShapeOLEControl:    "msoOLEControlObject",
		ShapePicture:       "msoPicture",
		ShapePlaceholder:   "msoPlaceholder",
		ShapeTextEffect:    "msoTextEffect",
		ShapeMedia:         "msoMedia",
		ShapeTextBox:       "msoTextBox",
		ShapeScriptAnchor:  "msoScriptAnchor",
		ShapeTable:         "msoTable",
		ShapeCanvas:        "msoCanvas",
		ShapeDiagram:       "msoDiagram",
		ShapeInk:           "msoInk",
		ShapeInkComment:    "msoInkComment",
		ShapeIgxGraphic:    "msoIgxGraphic",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "msoShapeUnknown"
}

// PlaceholderKind mirrors the PpPlaceholderType enumeration.
type PlaceholderKind int

const (
	// PlaceholderNone marks shapes that are not placeholders at all.
	PlaceholderNone PlaceholderKind = 0

	PlaceholderMixed          PlaceholderKind = -2
	PlaceholderTitle          PlaceholderKind = 1
	PlaceholderBody           PlaceholderKind = 2
	PlaceholderCenterTitle    PlaceholderKind = 3
	PlaceholderSubtitle       PlaceholderKind = 4
	PlaceholderVerticalTitle  PlaceholderKind = 5
	PlaceholderVerticalBody   PlaceholderKind = 6
	PlaceholderObject         PlaceholderKind = 7
	PlaceholderChart          PlaceholderKind = 8
	PlaceholderBitmap         PlaceholderKind = 9
	PlaceholderMediaClip      PlaceholderKind = 10
	PlaceholderOrgChart       PlaceholderKind = 11
	PlaceholderTable          PlaceholderKind = 12
	PlaceholderSlideNumber    PlaceholderKind = 13
	PlaceholderHeader         PlaceholderKind = 14
	PlaceholderFooter         PlaceholderKind = 15
	PlaceholderDate           PlaceholderKind = 16
	PlaceholderVerticalObject PlaceholderKind = 17
	PlaceholderPicture        PlaceholderKind = 18
)

// IsTitleLike reports whether the placeholder is reserved for a title,
// subtitle, or body. Title-like placeholders are exempt from the empty
// placeholder fill/delete bookkeeping.
func (k PlaceholderKind) IsTitleLike() bool {
	return k == PlaceholderTitle || k == PlaceholderSubtitle || k == PlaceholderBody
}

// IsPictureLike reports whether the placeholder visually displays an image
// when filled (object, bitmap, or picture placeholders).
func (k PlaceholderKind) IsPictureLike() bool {
	return k == PlaceholderObject || k == PlaceholderBitmap || k == PlaceholderPicture
}

// ZOrderCmd mirrors the MsoZOrderCmd enumeration.
type ZOrderCmd int

const (
	BringToFront       ZOrderCmd = 0
	SendToBack         ZOrderCmd = 1
	BringForward       ZOrderCmd = 2
	SendBackward       ZOrderCmd = 3
	BringInFrontOfText ZOrderCmd = 4
	SendBehindText     ZOrderCmd = 5
)
