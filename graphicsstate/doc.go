// Package graphicsstate tracks the state a content stream's operators
// control.
//
// The graphics state covers the transformation matrix, colors and color
// spaces, line attributes, and the text state. This package replays a
// parsed operation sequence onto that state, including the q/Q save stack
// and the path being constructed between painting operators.
//
// # Interpreter
//
// Interpreter walks typed operations from the contentstream package:
//
//	in := graphicsstate.NewInterpreter()
//	if err := in.ApplyBytes(data); err != nil {
//		// handle error
//	}
//	pos := in.State.TextPosition()
//
// Apply handles one operation at a time when the caller wants to observe
// the state between operations.
//
// # Text positioning
//
// TextState keeps both the text matrix and the text line matrix. The
// positioning operators compose onto the line matrix: Td offsets it in
// its own space, Tm replaces both, and T* reuses the leading. TextPosition
// reports the resulting glyph origin in device space. Glyph displacement
// from the showing operators is not tracked; it would need font metrics.
//
// # Paths
//
// Path accumulates move, line, curve and rectangle segments with
// current-point tracking. A rectangle expands into its move-line-close
// form. Painting operators clear the accumulator.
package graphicsstate
