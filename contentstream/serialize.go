package contentstream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tsawler/pagestream/core"
	"github.com/tsawler/pagestream/model"
)

// Serialize writes an operation sequence back out as content-stream bytes.
//
// Composite operations re-fold where neighbors allow: a close followed by a
// paint becomes s, b or b*, a curve whose first control point is the
// current point becomes v, a leading and a move that mirror each other
// become TD, a newline followed by a draw becomes ', and the word-spacing
// form of " reassembles from its four parts. Parsing the output yields the
// input sequence again, and serializing a second time is byte-stable.
func Serialize(ops []Operation) []byte {
	var buf bytes.Buffer
	var current model.Point
	haveCurrent := false

	for i := 0; i < len(ops); {
		advance := 1
		switch op := ops[i].(type) {
		case OpBeginMarkedContent:
			if op.Properties != nil {
				fmt.Fprintf(&buf, "%s %s BDC\n", op.Tag, op.Properties)
			} else {
				fmt.Fprintf(&buf, "%s BMC\n", op.Tag)
			}
		case OpEndMarkedContent:
			buf.WriteString("EMC\n")
		case OpMarkedContentPoint:
			if op.Properties != nil {
				fmt.Fprintf(&buf, "%s %s DP\n", op.Tag, op.Properties)
			} else {
				fmt.Fprintf(&buf, "%s MP\n", op.Tag)
			}
		case OpClose:
			if i+1 < len(ops) {
				switch next := ops[i+1].(type) {
				case OpStroke:
					buf.WriteString("s\n")
					advance = 2
				case OpFillAndStroke:
					if next.Winding == EvenOdd {
						buf.WriteString("b*\n")
					} else {
						buf.WriteString("b\n")
					}
					advance = 2
				}
			}
			if advance == 1 {
				buf.WriteString("h\n")
			}
		case OpMoveTo:
			fmt.Fprintf(&buf, "%s m\n", op.P.Format())
			current, haveCurrent = op.P, true
		case OpLineTo:
			fmt.Fprintf(&buf, "%s l\n", op.P.Format())
			current, haveCurrent = op.P, true
		case OpCurveTo:
			switch {
			case haveCurrent && op.C1 == current:
				fmt.Fprintf(&buf, "%s %s v\n", op.C2.Format(), op.P.Format())
			case op.C2 == op.P:
				fmt.Fprintf(&buf, "%s %s y\n", op.C1.Format(), op.P.Format())
			default:
				fmt.Fprintf(&buf, "%s %s %s c\n", op.C1.Format(), op.C2.Format(), op.P.Format())
			}
			current, haveCurrent = op.P, true
		case OpRect:
			fmt.Fprintf(&buf, "%s re\n", op.Rect.Format())
		case OpEndPath:
			buf.WriteString("n\n")
		case OpStroke:
			buf.WriteString("S\n")
		case OpFillAndStroke:
			if op.Winding == EvenOdd {
				buf.WriteString("B*\n")
			} else {
				buf.WriteString("B\n")
			}
		case OpFill:
			if op.Winding == EvenOdd {
				buf.WriteString("f*\n")
			} else {
				buf.WriteString("f\n")
			}
		case OpShade:
			fmt.Fprintf(&buf, "%s sh\n", op.Name)
		case OpClip:
			if op.Winding == EvenOdd {
				buf.WriteString("W*\n")
			} else {
				buf.WriteString("W\n")
			}
		case OpSave:
			buf.WriteString("q\n")
		case OpRestore:
			buf.WriteString("Q\n")
		case OpTransform:
			fmt.Fprintf(&buf, "%s cm\n", op.Matrix.Format())
		case OpLineWidth:
			fmt.Fprintf(&buf, "%s w\n", formatFloat(op.Width))
		case OpDash:
			buf.WriteByte('[')
			for j, v := range op.Pattern {
				if j > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(formatFloat(v))
			}
			fmt.Fprintf(&buf, "] %s d\n", formatFloat(op.Phase))
		case OpLineJoin:
			fmt.Fprintf(&buf, "%d j\n", op.Join)
		case OpLineCap:
			fmt.Fprintf(&buf, "%d J\n", op.Cap)
		case OpMiterLimit:
			fmt.Fprintf(&buf, "%s M\n", formatFloat(op.Limit))
		case OpFlatness:
			fmt.Fprintf(&buf, "%s i\n", formatFloat(op.Tolerance))
		case OpGraphicsState:
			fmt.Fprintf(&buf, "%s gs\n", op.Name)
		case OpStrokeColor:
			writeColor(&buf, op.Color, true)
		case OpFillColor:
			writeColor(&buf, op.Color, false)
		case OpStrokeColorSpace:
			fmt.Fprintf(&buf, "%s CS\n", op.Name)
		case OpFillColorSpace:
			fmt.Fprintf(&buf, "%s cs\n", op.Name)
		case OpRenderingIntent:
			fmt.Fprintf(&buf, "%s ri\n", core.Name(op.Intent.Name()))
		case OpBeginText:
			buf.WriteString("BT\n")
		case OpEndText:
			buf.WriteString("ET\n")
		case OpCharSpacing:
			fmt.Fprintf(&buf, "%s Tc\n", formatFloat(op.CharSpace))
		case OpWordSpacing:
			if i+3 < len(ops) {
				cs, okCS := ops[i+1].(OpCharSpacing)
				_, okNL := ops[i+2].(OpTextNewline)
				td, okTD := ops[i+3].(OpTextDraw)
				if okCS && okNL && okTD {
					fmt.Fprintf(&buf, "%s %s %s \"\n", formatFloat(op.WordSpace), formatFloat(cs.CharSpace), td.Text)
					advance = 4
				}
			}
			if advance == 1 {
				fmt.Fprintf(&buf, "%s Tw\n", formatFloat(op.WordSpace))
			}
		case OpTextScaling:
			fmt.Fprintf(&buf, "%s Tz\n", formatFloat(op.HorizScale))
		case OpLeading:
			if i+1 < len(ops) {
				if mv, ok := ops[i+1].(OpMoveTextPosition); ok && op.Leading == -mv.Translation.Y {
					fmt.Fprintf(&buf, "%s TD\n", mv.Translation.Format())
					advance = 2
				}
			}
			if advance == 1 {
				fmt.Fprintf(&buf, "%s TL\n", formatFloat(op.Leading))
			}
		case OpTextFont:
			fmt.Fprintf(&buf, "%s %s Tf\n", op.Name, formatFloat(op.Size))
		case OpTextRenderMode:
			fmt.Fprintf(&buf, "%d Tr\n", op.Mode)
		case OpTextRise:
			fmt.Fprintf(&buf, "%s Ts\n", formatFloat(op.Rise))
		case OpMoveTextPosition:
			fmt.Fprintf(&buf, "%s Td\n", op.Translation.Format())
		case OpSetTextMatrix:
			fmt.Fprintf(&buf, "%s Tm\n", op.Matrix.Format())
		case OpTextNewline:
			if i+1 < len(ops) {
				if td, ok := ops[i+1].(OpTextDraw); ok {
					fmt.Fprintf(&buf, "%s '\n", td.Text)
					advance = 2
				}
			}
			if advance == 1 {
				buf.WriteString("T*\n")
			}
		case OpTextDraw:
			fmt.Fprintf(&buf, "%s Tj\n", op.Text)
		case OpTextDrawAdjusted:
			fmt.Fprintf(&buf, "%s TJ\n", op.Array)
		case OpXObject:
			fmt.Fprintf(&buf, "%s Do\n", op.Name)
		case OpInlineImage:
			writeInlineImage(&buf, op.Image)
		}
		i += advance
	}
	return buf.Bytes()
}

// writeColor emits the device-space operator pairs, or the component list
// form for everything else. Stroking operators are the uppercase variants;
// SC and sc always normalize to SCN and scn.
func writeColor(buf *bytes.Buffer, c Color, stroking bool) {
	switch v := c.(type) {
	case ColorGray:
		if stroking {
			fmt.Fprintf(buf, "%s G\n", formatFloat(v.Gray))
		} else {
			fmt.Fprintf(buf, "%s g\n", formatFloat(v.Gray))
		}
	case ColorRGB:
		if stroking {
			fmt.Fprintf(buf, "%s %s %s RG\n", formatFloat(v.R), formatFloat(v.G), formatFloat(v.B))
		} else {
			fmt.Fprintf(buf, "%s %s %s rg\n", formatFloat(v.R), formatFloat(v.G), formatFloat(v.B))
		}
	case ColorCMYK:
		if stroking {
			fmt.Fprintf(buf, "%s %s %s %s K\n", formatFloat(v.C), formatFloat(v.M), formatFloat(v.Y), formatFloat(v.K))
		} else {
			fmt.Fprintf(buf, "%s %s %s %s k\n", formatFloat(v.C), formatFloat(v.M), formatFloat(v.Y), formatFloat(v.K))
		}
	case ColorOther:
		for _, operand := range v.Operands {
			fmt.Fprintf(buf, "%s ", operand)
		}
		if stroking {
			buf.WriteString("SCN\n")
		} else {
			buf.WriteString("scn\n")
		}
	}
}

// writeInlineImage emits BI, the metadata in sorted key order, ID, a single
// separator byte, the raw payload, and the newline-EI terminator.
func writeInlineImage(buf *bytes.Buffer, img InlineImage) {
	buf.WriteString("BI")
	for _, key := range img.Dict.Keys() {
		fmt.Fprintf(buf, " %s %s", core.Name(key), img.Dict[key])
	}
	buf.WriteString(" ID ")
	buf.Write(img.Data)
	buf.WriteString("\nEI\n")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
