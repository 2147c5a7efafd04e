package contentstream

import (
	"github.com/tsawler/pagestream/core"
	"github.com/tsawler/pagestream/model"
)

// Operation is one typed content-stream operation. The Op* types below form
// a closed set covering every operator family of the page description
// language; a parsed stream is a []Operation and Serialize turns a sequence
// back into bytes.
type Operation interface {
	// Operator returns the mnemonic this operation serializes to when it
	// stands alone. Operations that fold with a neighbor (a path close
	// before a stroke, a leading before a text move) serialize under the
	// combined mnemonic instead; see Serialize.
	Operator() string
}

// Winding selects the rule deciding which regions a path encloses.
type Winding int

const (
	// NonZero is the nonzero winding number rule.
	NonZero Winding = iota
	// EvenOdd is the even-odd rule, selected by the starred operators.
	EvenOdd
)

// LineCap is the shape at the ends of open stroked subpaths. The numeric
// values are the wire codes of the J operator.
type LineCap int

const (
	LineCapButt   LineCap = 0
	LineCapRound  LineCap = 1
	LineCapSquare LineCap = 2
)

// LineJoin is the shape at the corners of stroked paths. The numeric values
// are the wire codes of the j operator.
type LineJoin int

const (
	LineJoinMiter LineJoin = 0
	LineJoinRound LineJoin = 1
	LineJoinBevel LineJoin = 2
)

// TextRenderMode selects how the text-showing operators paint glyphs. The
// numeric values are the wire codes of the Tr operator.
type TextRenderMode int

const (
	TextModeFill TextRenderMode = iota
	TextModeStroke
	TextModeFillStroke
	TextModeInvisible
	TextModeFillClip
	TextModeStrokeClip
	TextModeFillStrokeClip
	TextModeClip
)

// RenderingIntent is the color conversion intent set by the ri operator or
// an inline image's Intent entry.
type RenderingIntent int

const (
	AbsoluteColorimetric RenderingIntent = iota
	RelativeColorimetric
	Saturation
	Perceptual
)

// Name returns the name the intent is written as in a content stream.
func (ri RenderingIntent) Name() string {
	switch ri {
	case AbsoluteColorimetric:
		return "AbsoluteColorimetric"
	case RelativeColorimetric:
		return "RelativeColorimetric"
	case Saturation:
		return "Saturation"
	case Perceptual:
		return "Perceptual"
	}
	return ""
}

// ParseRenderingIntent maps an intent name to its value. The second result
// is false for names outside the four defined intents.
func ParseRenderingIntent(name string) (RenderingIntent, bool) {
	switch name {
	case "AbsoluteColorimetric":
		return AbsoluteColorimetric, true
	case "RelativeColorimetric":
		return RelativeColorimetric, true
	case "Saturation":
		return Saturation, true
	case "Perceptual":
		return Perceptual, true
	}
	return 0, false
}

// Color is a color in one of the device spaces, or the raw component list
// of whatever space is current for the SC/SCN/sc/scn forms.
type Color interface {
	isColor()
}

// ColorGray is a DeviceGray color with one component in [0, 1].
type ColorGray struct {
	Gray float64
}

// ColorRGB is a DeviceRGB color with components in [0, 1].
type ColorRGB struct {
	R, G, B float64
}

// ColorCMYK is a DeviceCMYK color with components in [0, 1].
type ColorCMYK struct {
	C, M, Y, K float64
}

// ColorOther holds the operands of SC, SCN, sc, or scn verbatim. Their
// meaning depends on the color space selected by CS or cs, which the codec
// does not interpret.
type ColorOther struct {
	Operands []core.Object
}

func (ColorGray) isColor()  {}
func (ColorRGB) isColor()   {}
func (ColorCMYK) isColor()  {}
func (ColorOther) isColor() {}

// Marked content.

// OpBeginMarkedContent begins a marked-content sequence: BMC when
// Properties is nil, BDC when present.
type OpBeginMarkedContent struct {
	Tag        core.Name
	Properties core.Object // nil for BMC; a name or dictionary for BDC
}

func (op OpBeginMarkedContent) Operator() string {
	if op.Properties != nil {
		return "BDC"
	}
	return "BMC"
}

// OpEndMarkedContent ends a marked-content sequence (EMC).
type OpEndMarkedContent struct{}

func (OpEndMarkedContent) Operator() string { return "EMC" }

// OpMarkedContentPoint marks a single point in the stream: MP when
// Properties is nil, DP when present.
type OpMarkedContentPoint struct {
	Tag        core.Name
	Properties core.Object
}

func (op OpMarkedContentPoint) Operator() string {
	if op.Properties != nil {
		return "DP"
	}
	return "MP"
}

// Path construction.

// OpMoveTo begins a new subpath at P (m).
type OpMoveTo struct {
	P model.Point
}

func (OpMoveTo) Operator() string { return "m" }

// OpLineTo appends a straight segment ending at P (l).
type OpLineTo struct {
	P model.Point
}

func (OpLineTo) Operator() string { return "l" }

// OpCurveTo appends a cubic Bezier segment with control points C1 and C2,
// ending at P. Produced by c and by the shorthands v (C1 is the current
// point) and y (C2 coincides with P).
type OpCurveTo struct {
	C1, C2, P model.Point
}

func (OpCurveTo) Operator() string { return "c" }

// OpRect appends a complete rectangle subpath (re).
type OpRect struct {
	Rect model.Rect
}

func (OpRect) Operator() string { return "re" }

// OpClose closes the current subpath (h, and the closing half of s, b
// and b*).
type OpClose struct{}

func (OpClose) Operator() string { return "h" }

// Path painting.

// OpStroke strokes the path (S, and the painting half of s).
type OpStroke struct{}

func (OpStroke) Operator() string { return "S" }

// OpFill fills the path (f, f*, and the obsolete F).
type OpFill struct {
	Winding Winding
}

func (op OpFill) Operator() string {
	if op.Winding == EvenOdd {
		return "f*"
	}
	return "f"
}

// OpFillAndStroke fills, then strokes the path (B, B*, and the painting
// half of b and b*).
type OpFillAndStroke struct {
	Winding Winding
}

func (op OpFillAndStroke) Operator() string {
	if op.Winding == EvenOdd {
		return "B*"
	}
	return "B"
}

// OpEndPath ends the path without painting it (n).
type OpEndPath struct{}

func (OpEndPath) Operator() string { return "n" }

// OpShade paints the named shading pattern over the clipping region (sh).
type OpShade struct {
	Name core.Name
}

func (OpShade) Operator() string { return "sh" }

// OpClip intersects the clipping path with the current path once the next
// painting operation completes (W, W*).
type OpClip struct {
	Winding Winding
}

func (op OpClip) Operator() string {
	if op.Winding == EvenOdd {
		return "W*"
	}
	return "W"
}

// Graphics state.

// OpSave pushes the graphics state (q).
type OpSave struct{}

func (OpSave) Operator() string { return "q" }

// OpRestore pops the graphics state (Q).
type OpRestore struct{}

func (OpRestore) Operator() string { return "Q" }

// OpTransform concatenates Matrix onto the current transformation
// matrix (cm).
type OpTransform struct {
	Matrix model.Matrix
}

func (OpTransform) Operator() string { return "cm" }

// OpLineWidth sets the stroke width in user space units (w).
type OpLineWidth struct {
	Width float64
}

func (OpLineWidth) Operator() string { return "w" }

// OpDash sets the dash pattern and phase (d). An empty pattern means solid
// lines.
type OpDash struct {
	Pattern []float64
	Phase   float64
}

func (OpDash) Operator() string { return "d" }

// OpLineJoin sets the corner style for stroked paths (j).
type OpLineJoin struct {
	Join LineJoin
}

func (OpLineJoin) Operator() string { return "j" }

// OpLineCap sets the end style for open stroked subpaths (J).
type OpLineCap struct {
	Cap LineCap
}

func (OpLineCap) Operator() string { return "J" }

// OpMiterLimit caps the length of miter joins (M).
type OpMiterLimit struct {
	Limit float64
}

func (OpMiterLimit) Operator() string { return "M" }

// OpFlatness sets the curve flatness tolerance (i).
type OpFlatness struct {
	Tolerance float64
}

func (OpFlatness) Operator() string { return "i" }

// OpGraphicsState applies the named parameter dictionary from the resource
// dictionary's ExtGState entry (gs).
type OpGraphicsState struct {
	Name core.Name
}

func (OpGraphicsState) Operator() string { return "gs" }

// Color operators.

// OpStrokeColor sets the stroking color (G, RG, K, SC, SCN).
type OpStrokeColor struct {
	Color Color
}

func (op OpStrokeColor) Operator() string {
	switch op.Color.(type) {
	case ColorGray:
		return "G"
	case ColorRGB:
		return "RG"
	case ColorCMYK:
		return "K"
	}
	return "SCN"
}

// OpFillColor sets the non-stroking color (g, rg, k, sc, scn).
type OpFillColor struct {
	Color Color
}

func (op OpFillColor) Operator() string {
	switch op.Color.(type) {
	case ColorGray:
		return "g"
	case ColorRGB:
		return "rg"
	case ColorCMYK:
		return "k"
	}
	return "scn"
}

// OpStrokeColorSpace selects the stroking color space by name (CS).
type OpStrokeColorSpace struct {
	Name core.Name
}

func (OpStrokeColorSpace) Operator() string { return "CS" }

// OpFillColorSpace selects the non-stroking color space by name (cs).
type OpFillColorSpace struct {
	Name core.Name
}

func (OpFillColorSpace) Operator() string { return "cs" }

// OpRenderingIntent sets the color rendering intent (ri).
type OpRenderingIntent struct {
	Intent RenderingIntent
}

func (OpRenderingIntent) Operator() string { return "ri" }

// Text.

// OpBeginText begins a text object and resets the text matrices (BT).
type OpBeginText struct{}

func (OpBeginText) Operator() string { return "BT" }

// OpEndText ends the text object (ET).
type OpEndText struct{}

func (OpEndText) Operator() string { return "ET" }

// OpCharSpacing sets spacing added after each glyph (Tc).
type OpCharSpacing struct {
	CharSpace float64
}

func (OpCharSpacing) Operator() string { return "Tc" }

// OpWordSpacing sets spacing added after each space character (Tw).
type OpWordSpacing struct {
	WordSpace float64
}

func (OpWordSpacing) Operator() string { return "Tw" }

// OpTextScaling sets horizontal glyph scaling as a percentage (Tz).
type OpTextScaling struct {
	HorizScale float64
}

func (OpTextScaling) Operator() string { return "Tz" }

// OpLeading sets the vertical distance between text line starts (TL, and
// the leading half of TD).
type OpLeading struct {
	Leading float64
}

func (OpLeading) Operator() string { return "TL" }

// OpTextFont selects the font resource and size (Tf).
type OpTextFont struct {
	Name core.Name
	Size float64
}

func (OpTextFont) Operator() string { return "Tf" }

// OpTextRenderMode sets the glyph painting mode (Tr).
type OpTextRenderMode struct {
	Mode TextRenderMode
}

func (OpTextRenderMode) Operator() string { return "Tr" }

// OpTextRise offsets the baseline for superscripts and subscripts (Ts).
type OpTextRise struct {
	Rise float64
}

func (OpTextRise) Operator() string { return "Ts" }

// OpMoveTextPosition starts a new line offset from the previous line
// start (Td, and the movement half of TD).
type OpMoveTextPosition struct {
	Translation model.Point
}

func (OpMoveTextPosition) Operator() string { return "Td" }

// OpSetTextMatrix sets the text matrix and the text line matrix (Tm).
type OpSetTextMatrix struct {
	Matrix model.Matrix
}

func (OpSetTextMatrix) Operator() string { return "Tm" }

// OpTextNewline moves to the start of the next line using the current
// leading (T*, and the line-advance half of ' and ").
type OpTextNewline struct{}

func (OpTextNewline) Operator() string { return "T*" }

// OpTextDraw shows a text string (Tj, and the drawing half of ' and ").
type OpTextDraw struct {
	Text core.String
}

func (OpTextDraw) Operator() string { return "Tj" }

// OpTextDrawAdjusted shows text with per-element position adjustments (TJ).
// The array alternates strings with numbers that shift the position by
// thousandths of an em.
type OpTextDrawAdjusted struct {
	Array core.Array
}

func (OpTextDrawAdjusted) Operator() string { return "TJ" }

// XObjects and inline images.

// OpXObject paints the named form or image XObject (Do).
type OpXObject struct {
	Name core.Name
}

func (OpXObject) Operator() string { return "Do" }

// OpInlineImage carries a complete inline image (BI .. ID .. EI).
type OpInlineImage struct {
	Image InlineImage
}

func (OpInlineImage) Operator() string { return "BI" }
