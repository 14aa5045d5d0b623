package pptxfile

import "encoding/xml"

// presentationXML is the subset of ppt/presentation.xml we read: the slide
// size in EMUs.
type presentationXML struct {
	XMLName xml.Name    `xml:"presentation"`
	SlideSz *slideSzXML `xml:"sldSz"`
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

// spXML is a shape element on a slide.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	NvPr nvPrXML `xml:"nvPr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"`
}

// phXML is placeholder info. A ph element without a type attribute is a body
// placeholder.
type phXML struct {
	Type string `xml:"type,attr"`
	Idx  int    `xml:"idx,attr"`
}

type spPrXML struct {
	Xfrm *xfrmXML `xml:"xfrm"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type txBodyXML struct {
	P []pXML `xml:"p"`
}

type pXML struct {
	R   []rXML   `xml:"r"`
	Fld []fldXML `xml:"fld"`
}

type rXML struct {
	T string `xml:"t"`
}

type fldXML struct {
	T string `xml:"t"`
}

// picXML is a picture element. Pictures placed into a layout placeholder
// carry a ph element of their own.
type picXML struct {
	NvPicPr nvPicPrXML `xml:"nvPicPr"`
	SpPr    spPrXML    `xml:"spPr"`
}

type nvPicPrXML struct {
	NvPr nvPrXML `xml:"nvPr"`
}

// graphicFrameXML holds tables and charts.
type graphicFrameXML struct {
	NvGraphicFramePr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
	Xfrm             *xfrmXML            `xml:"xfrm"`
	Graphic          graphicXML          `xml:"graphic"`
}

type nvGraphicFramePrXML struct {
	NvPr nvPrXML `xml:"nvPr"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI string `xml:"uri,attr"`
}

// notesSlideXML is a ppt/notesSlides/notesSlide*.xml file.
type notesSlideXML struct {
	XMLName xml.Name `xml:"notes"`
	CSld    struct {
		SpTree struct {
			Sp []spXML `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

// relationshipsXML is a .rels part.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
