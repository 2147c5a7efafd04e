package graphicsstate

import (
	"errors"
	"testing"

	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/model"
)

// TestInterpreterStateOps tests the line attribute and color intent
// operators end to end
func TestInterpreterStateOps(t *testing.T) {
	in := NewInterpreter()
	err := in.ApplyBytes([]byte("0.5 G 2.5 w 1 j 2 J 4 M [3 1] 0.5 d 0.2 i /Perceptual ri\n"))
	if err != nil {
		t.Fatalf("ApplyBytes failed: %v", err)
	}

	gs := in.State
	if gs.StrokeColor != (contentstream.ColorGray{Gray: 0.5}) {
		t.Errorf("expected gray stroke color, got %v", gs.StrokeColor)
	}
	if gs.LineWidth != 2.5 {
		t.Errorf("expected line width 2.5, got %f", gs.LineWidth)
	}
	if gs.LineJoin != contentstream.LineJoinRound {
		t.Errorf("expected round join, got %v", gs.LineJoin)
	}
	if gs.LineCap != contentstream.LineCapSquare {
		t.Errorf("expected square cap, got %v", gs.LineCap)
	}
	if gs.MiterLimit != 4 {
		t.Errorf("expected miter limit 4, got %f", gs.MiterLimit)
	}
	if len(gs.DashPattern) != 2 || gs.DashPattern[0] != 3 || gs.DashPattern[1] != 1 {
		t.Errorf("expected dash pattern [3 1], got %v", gs.DashPattern)
	}
	if gs.DashPhase != 0.5 {
		t.Errorf("expected dash phase 0.5, got %f", gs.DashPhase)
	}
	if gs.Flatness != 0.2 {
		t.Errorf("expected flatness 0.2, got %f", gs.Flatness)
	}
	if gs.Intent != contentstream.Perceptual {
		t.Errorf("expected Perceptual intent, got %v", gs.Intent)
	}
}

// TestInterpreterSaveRestore tests q/Q through the dispatcher
func TestInterpreterSaveRestore(t *testing.T) {
	in := NewInterpreter()
	ops := []contentstream.Operation{
		contentstream.OpSave{},
		contentstream.OpLineWidth{Width: 5},
		contentstream.OpRestore{},
	}
	if err := in.ApplyAll(ops); err != nil {
		t.Fatalf("ApplyAll failed: %v", err)
	}

	if in.State.LineWidth != 1 {
		t.Errorf("expected restored line width 1, got %f", in.State.LineWidth)
	}
}

// TestInterpreterRestoreUnderflow tests that a stray Q surfaces the stack
// error
func TestInterpreterRestoreUnderflow(t *testing.T) {
	in := NewInterpreter()
	err := in.Apply(contentstream.OpRestore{})
	if !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("expected ErrStackUnderflow, got %v", err)
	}
}

// TestInterpreterTransform tests cm composition through the dispatcher
func TestInterpreterTransform(t *testing.T) {
	in := NewInterpreter()
	err := in.ApplyBytes([]byte("2 0 0 2 0 0 cm 1 0 0 1 10 20 cm\n"))
	if err != nil {
		t.Fatalf("ApplyBytes failed: %v", err)
	}

	want := model.Matrix{2, 0, 0, 2, 20, 40}
	if in.State.CTM != want {
		t.Errorf("expected CTM %v, got %v", want, in.State.CTM)
	}
}

// TestInterpreterTextFlow tests a text block with positioning operators
func TestInterpreterTextFlow(t *testing.T) {
	in := NewInterpreter()
	err := in.ApplyBytes([]byte("BT /F1 12 Tf 14 TL 72 720 Td T* ET\n"))
	if err != nil {
		t.Fatalf("ApplyBytes failed: %v", err)
	}

	text := in.State.Text
	if text.FontName != "F1" {
		t.Errorf("expected font F1, got %s", text.FontName)
	}
	if text.FontSize != 12 {
		t.Errorf("expected font size 12, got %f", text.FontSize)
	}
	if text.Leading != 14 {
		t.Errorf("expected leading 14, got %f", text.Leading)
	}

	want := model.Matrix{1, 0, 0, 1, 72, 706}
	if text.TextMatrix != want {
		t.Errorf("expected text matrix %v, got %v", want, text.TextMatrix)
	}
}

// TestInterpreterMoveTextComposite tests the expanded TD pair
func TestInterpreterMoveTextComposite(t *testing.T) {
	in := NewInterpreter()
	err := in.ApplyBytes([]byte("BT 8 -14 TD ET\n"))
	if err != nil {
		t.Fatalf("ApplyBytes failed: %v", err)
	}

	if in.State.Text.Leading != 14 {
		t.Errorf("expected leading 14, got %f", in.State.Text.Leading)
	}
	want := model.Matrix{1, 0, 0, 1, 8, -14}
	if in.State.Text.TextMatrix != want {
		t.Errorf("expected text matrix %v, got %v", want, in.State.Text.TextMatrix)
	}
}

// TestInterpreterPathConstruction tests that path operators accumulate
// segments
func TestInterpreterPathConstruction(t *testing.T) {
	in := NewInterpreter()
	err := in.ApplyBytes([]byte("10 10 m 100 10 l 0 0 50 50 re\n"))
	if err != nil {
		t.Fatalf("ApplyBytes failed: %v", err)
	}

	// Move, line, and the rectangle's five expanded segments.
	if len(in.Path.Segments) != 7 {
		t.Fatalf("expected 7 segments, got %d", len(in.Path.Segments))
	}
	if in.Path.CurrentPoint != (model.Point{X: 0, Y: 0}) {
		t.Errorf("expected current point at rectangle origin, got %v", in.Path.CurrentPoint)
	}
}

// TestInterpreterPaintClearsPath tests that painting ends the path
func TestInterpreterPaintClearsPath(t *testing.T) {
	in := NewInterpreter()
	err := in.ApplyBytes([]byte("10 10 m 100 10 l S\n"))
	if err != nil {
		t.Fatalf("ApplyBytes failed: %v", err)
	}

	if !in.Path.IsEmpty() {
		t.Errorf("expected empty path after stroke, got %d segments", len(in.Path.Segments))
	}
}

// TestInterpreterColorTracking tests the color and color space operators
func TestInterpreterColorTracking(t *testing.T) {
	in := NewInterpreter()
	err := in.ApplyBytes([]byte("1 0 0 RG 0.5 g /Sep CS /P1 SCN\n"))
	if err != nil {
		t.Fatalf("ApplyBytes failed: %v", err)
	}

	gs := in.State
	other, ok := gs.StrokeColor.(contentstream.ColorOther)
	if !ok {
		t.Fatalf("expected ColorOther stroke color, got %T", gs.StrokeColor)
	}
	if len(other.Operands) != 1 {
		t.Errorf("expected 1 color operand, got %d", len(other.Operands))
	}
	if gs.FillColor != (contentstream.ColorGray{Gray: 0.5}) {
		t.Errorf("expected gray fill color, got %v", gs.FillColor)
	}
	if gs.StrokeColorSpace != "Sep" {
		t.Errorf("expected Sep stroke color space, got %s", gs.StrokeColorSpace)
	}
}
