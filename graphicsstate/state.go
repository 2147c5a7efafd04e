package graphicsstate

import (
	"errors"

	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/core"
	"github.com/tsawler/pagestream/model"
)

// ErrStackUnderflow is returned when a restore arrives with no matching
// save on the stack.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// TextState holds the text-specific parameters.
type TextState struct {
	FontName core.Name
	FontSize float64

	CharSpacing       float64
	WordSpacing       float64
	HorizontalScaling float64
	Leading           float64
	RenderMode        contentstream.TextRenderMode
	Rise              float64

	// TextMatrix and TextLineMatrix are valid between BT and ET. The line
	// matrix marks the start of the current line; the positioning
	// operators move it and reset the text matrix onto it.
	TextMatrix     model.Matrix
	TextLineMatrix model.Matrix
}

// GraphicsState holds the parameters the state-setting operators control.
type GraphicsState struct {
	CTM model.Matrix

	StrokeColor      contentstream.Color
	FillColor        contentstream.Color
	StrokeColorSpace core.Name
	FillColorSpace   core.Name
	Intent           contentstream.RenderingIntent

	LineWidth   float64
	LineCap     contentstream.LineCap
	LineJoin    contentstream.LineJoin
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64
	Flatness    float64

	Text TextState

	stack []*GraphicsState
}

// NewGraphicsState creates a graphics state with the format's default
// values.
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:              model.Identity(),
		StrokeColor:      contentstream.ColorGray{},
		FillColor:        contentstream.ColorGray{},
		StrokeColorSpace: "DeviceGray",
		FillColorSpace:   "DeviceGray",
		Intent:           contentstream.RelativeColorimetric,
		LineWidth:        1,
		MiterLimit:       10,
		Flatness:         1,
		Text: TextState{
			HorizontalScaling: 100,
			TextMatrix:        model.Identity(),
			TextLineMatrix:    model.Identity(),
		},
	}
}

// Clone returns a copy of the state without the save stack.
func (gs *GraphicsState) Clone() *GraphicsState {
	clone := *gs
	clone.stack = nil
	if gs.DashPattern != nil {
		clone.DashPattern = make([]float64, len(gs.DashPattern))
		copy(clone.DashPattern, gs.DashPattern)
	}
	return &clone
}

// Save pushes a copy of the current state (q operator).
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, gs.Clone())
}

// Restore pops the most recent save (Q operator).
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return ErrStackUnderflow
	}
	saved := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]

	stack := gs.stack
	*gs = *saved
	gs.stack = stack
	return nil
}

// Depth returns the number of saved states on the stack.
func (gs *GraphicsState) Depth() int {
	return len(gs.stack)
}

// Concat prepends a matrix to the current transformation matrix
// (cm operator). The new matrix applies before everything already in
// effect.
func (gs *GraphicsState) Concat(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// BeginText resets both text matrices to identity (BT operator).
func (gs *GraphicsState) BeginText() {
	gs.Text.TextMatrix = model.Identity()
	gs.Text.TextLineMatrix = model.Identity()
}

// EndText leaves the text object (ET operator). The text matrices keep
// their final values until the next BT.
func (gs *GraphicsState) EndText() {}

// SetTextMatrix sets the text matrix and the line matrix (Tm operator).
func (gs *GraphicsState) SetTextMatrix(m model.Matrix) {
	gs.Text.TextMatrix = m
	gs.Text.TextLineMatrix = m
}

// MoveText starts a new line offset from the current line start
// (Td operator). The offset is measured in the space the line matrix
// describes, so only its translation changes.
func (gs *GraphicsState) MoveText(t model.Point) {
	gs.Text.TextLineMatrix = gs.Text.TextLineMatrix.Translated(t)
	gs.Text.TextMatrix = gs.Text.TextLineMatrix
}

// NextLine moves to the start of the next line using the current leading
// (T* operator).
func (gs *GraphicsState) NextLine() {
	gs.MoveText(model.Point{X: 0, Y: -gs.Text.Leading})
}

// TextPosition returns the device-space position where the next glyph
// origin would land, accounting for the text rise.
func (gs *GraphicsState) TextPosition() model.Point {
	p := gs.Text.TextMatrix.Transform(model.Point{X: 0, Y: gs.Text.Rise})
	return gs.CTM.Transform(p)
}
