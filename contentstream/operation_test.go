package contentstream

import (
	"testing"

	"github.com/tsawler/pagestream/core"
)

// TestOperatorMnemonics tests the mnemonics of operations whose operator
// depends on their fields
func TestOperatorMnemonics(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpBeginMarkedContent{Tag: "Span"}, "BMC"},
		{OpBeginMarkedContent{Tag: "Span", Properties: core.Dict{}}, "BDC"},
		{OpMarkedContentPoint{Tag: "T"}, "MP"},
		{OpMarkedContentPoint{Tag: "T", Properties: core.Name("P")}, "DP"},
		{OpFill{Winding: NonZero}, "f"},
		{OpFill{Winding: EvenOdd}, "f*"},
		{OpFillAndStroke{Winding: NonZero}, "B"},
		{OpFillAndStroke{Winding: EvenOdd}, "B*"},
		{OpClip{Winding: NonZero}, "W"},
		{OpClip{Winding: EvenOdd}, "W*"},
		{OpStrokeColor{Color: ColorGray{}}, "G"},
		{OpStrokeColor{Color: ColorRGB{}}, "RG"},
		{OpStrokeColor{Color: ColorCMYK{}}, "K"},
		{OpStrokeColor{Color: ColorOther{}}, "SCN"},
		{OpFillColor{Color: ColorGray{}}, "g"},
		{OpFillColor{Color: ColorRGB{}}, "rg"},
		{OpFillColor{Color: ColorCMYK{}}, "k"},
		{OpFillColor{Color: ColorOther{}}, "scn"},
		{OpClose{}, "h"},
		{OpCurveTo{}, "c"},
		{OpLeading{}, "TL"},
		{OpMoveTextPosition{}, "Td"},
		{OpTextNewline{}, "T*"},
		{OpInlineImage{}, "BI"},
	}

	for _, tt := range tests {
		if got := tt.op.Operator(); got != tt.want {
			t.Errorf("%T: expected operator %q, got %q", tt.op, tt.want, got)
		}
	}
}

// TestParseRenderingIntentNames tests the round trip between intent values
// and their names
func TestParseRenderingIntentNames(t *testing.T) {
	for _, intent := range []RenderingIntent{AbsoluteColorimetric, RelativeColorimetric, Saturation, Perceptual} {
		back, ok := ParseRenderingIntent(intent.Name())
		if !ok {
			t.Errorf("%s: name did not parse back", intent.Name())
			continue
		}
		if back != intent {
			t.Errorf("%s: parsed back to %s", intent.Name(), back.Name())
		}
	}

	if _, ok := ParseRenderingIntent("Vivid"); ok {
		t.Errorf("expected Vivid to be rejected")
	}
}
