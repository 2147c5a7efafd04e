// Package model provides the geometric value types used by content-stream
// operations.
//
// These are plain numeric structs with no behavior beyond affine algebra
// and the literal format used by content-stream operands. They carry no
// rendering semantics.
//
// # Geometry
//
//   - [Point] - 2D point with distance calculation
//   - [Rect] - rectangle as lower-left corner plus extent, matching the
//     operand order of the rectangle operator
//   - [Matrix] - 2D affine transformation in the six-element (a b c d e f)
//     form used by the cm and Tm operators
//
// # Composition
//
// [Matrix.Multiply] composes transformations in the row-vector convention:
//
//	ctm = model.Translate(10, 20).Multiply(ctm)
//
// [Matrix.Translated] implements the text-positioning rule where a move
// only contributes to the translation terms:
//
//	lineMatrix = lineMatrix.Translated(model.Point{X: tx, Y: ty})
//
// # Formatting
//
// Each type has a Format method emitting its operand syntax ("x y",
// "x y w h", "a b c d e f") and a matching Parse function. Numbers use the
// shortest decimal form that round-trips, never exponent notation.
package model
