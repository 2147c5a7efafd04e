package graphicsstate

import (
	"github.com/tsawler/pagestream/contentstream"
)

// Interpreter replays an operation sequence onto a graphics state and a
// path accumulator.
//
// Only the operations that change tracked state have an effect. Painting
// operators end the current path; text showing operators are ignored
// because glyph displacement needs font metrics the interpreter does not
// have.
type Interpreter struct {
	State *GraphicsState
	Path  *Path
}

// NewInterpreter creates an interpreter over a fresh default state.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		State: NewGraphicsState(),
		Path:  NewPath(),
	}
}

// ApplyAll applies a sequence of operations in order.
func (in *Interpreter) ApplyAll(ops []contentstream.Operation) error {
	for _, op := range ops {
		if err := in.Apply(op); err != nil {
			return err
		}
	}
	return nil
}

// ApplyBytes parses raw content-stream data and applies the result.
func (in *Interpreter) ApplyBytes(data []byte) error {
	ops, err := contentstream.Parse(data)
	if err != nil {
		return err
	}
	return in.ApplyAll(ops)
}

// Apply updates the state and path for a single operation.
func (in *Interpreter) Apply(op contentstream.Operation) error {
	gs := in.State
	switch op := op.(type) {
	case contentstream.OpSave:
		gs.Save()
	case contentstream.OpRestore:
		return gs.Restore()
	case contentstream.OpTransform:
		gs.Concat(op.Matrix)

	case contentstream.OpLineWidth:
		gs.LineWidth = op.Width
	case contentstream.OpLineCap:
		gs.LineCap = op.Cap
	case contentstream.OpLineJoin:
		gs.LineJoin = op.Join
	case contentstream.OpMiterLimit:
		gs.MiterLimit = op.Limit
	case contentstream.OpDash:
		gs.DashPattern = op.Pattern
		gs.DashPhase = op.Phase
	case contentstream.OpFlatness:
		gs.Flatness = op.Tolerance
	case contentstream.OpRenderingIntent:
		gs.Intent = op.Intent

	case contentstream.OpStrokeColor:
		gs.StrokeColor = op.Color
	case contentstream.OpFillColor:
		gs.FillColor = op.Color
	case contentstream.OpStrokeColorSpace:
		gs.StrokeColorSpace = op.Name
	case contentstream.OpFillColorSpace:
		gs.FillColorSpace = op.Name

	case contentstream.OpMoveTo:
		in.Path.MoveTo(op.P)
	case contentstream.OpLineTo:
		in.Path.LineTo(op.P)
	case contentstream.OpCurveTo:
		in.Path.CurveTo(op.C1, op.C2, op.P)
	case contentstream.OpRect:
		in.Path.Rectangle(op.Rect)
	case contentstream.OpClose:
		in.Path.ClosePath()
	case contentstream.OpStroke, contentstream.OpFill, contentstream.OpFillAndStroke, contentstream.OpEndPath:
		in.Path.Clear()

	case contentstream.OpBeginText:
		gs.BeginText()
	case contentstream.OpEndText:
		gs.EndText()
	case contentstream.OpTextFont:
		gs.Text.FontName = op.Name
		gs.Text.FontSize = op.Size
	case contentstream.OpCharSpacing:
		gs.Text.CharSpacing = op.CharSpace
	case contentstream.OpWordSpacing:
		gs.Text.WordSpacing = op.WordSpace
	case contentstream.OpTextScaling:
		gs.Text.HorizontalScaling = op.HorizScale
	case contentstream.OpLeading:
		gs.Text.Leading = op.Leading
	case contentstream.OpTextRenderMode:
		gs.Text.RenderMode = op.Mode
	case contentstream.OpTextRise:
		gs.Text.Rise = op.Rise
	case contentstream.OpMoveTextPosition:
		gs.MoveText(op.Translation)
	case contentstream.OpSetTextMatrix:
		gs.SetTextMatrix(op.Matrix)
	case contentstream.OpTextNewline:
		gs.NextLine()
	}
	return nil
}
