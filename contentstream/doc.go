// Package contentstream converts PDF content streams between their byte
// form and a typed operation sequence, in both directions.
//
// Content streams contain the instructions for rendering page content:
// text display, path drawing, color selection, and image placement. The
// language is postfix, operands before their operator, and this package
// resolves each operator into a dedicated operation type instead of an
// operator string with loose operands.
//
// # Parsing
//
// Parse returns the stream as a flat sequence of operations:
//
//	ops, err := contentstream.Parse(streamData)
//	for _, op := range ops {
//	    switch op := op.(type) {
//	    case contentstream.OpTextDraw:
//	        fmt.Printf("text: %s\n", op.Text)
//	    case contentstream.OpMoveTo:
//	        fmt.Printf("move to %v\n", op.P)
//	    }
//	}
//
// Shorthand operators are expanded while parsing, so consumers only deal
// with one form of each action:
//   - s, b, b* become a close followed by the paint operation
//   - TD becomes a leading change followed by a position move
//   - ' and " become their spacing, newline and draw components
//   - v and y become full curves with the implicit control point filled in
//
// Content split across several stream parts parses as one logical stream:
// after Parse on the first part, [Parser.ParseNext] feeds each further
// part while keeping the dispatcher state.
//
// # Serialization
//
// Serialize is the inverse. It re-folds the shorthands where neighboring
// operations allow, so parse followed by serialize reproduces compactly
// written streams, and serializing any sequence then parsing it yields the
// sequence back:
//
//	data := contentstream.Serialize(ops)
//
// # Inline images
//
// BI .. ID .. EI sequences parse into OpInlineImage. Abbreviated metadata
// keys and values (/W, /BPC, /Fl and the rest) are expanded to their
// canonical spellings, and InlineImage.DecodedData applies the declared
// filter chain to the payload.
//
// # Errors
//
// Malformed input fails with an error wrapping one of the package
// sentinels: ErrUnknownOperator, ErrMissingOperand, ErrOperandType,
// ErrOperandValue, ErrFramingOperator, ErrUnterminatedImage, or
// ErrReadPastBoundary for truncated data. Inside a BX .. EX section
// unknown operators are skipped instead of failing.
package contentstream
