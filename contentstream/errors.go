package contentstream

import "errors"

// Parse failures wrap one of these sentinels so callers can classify them
// with errors.Is while the message carries the offending operator.
var (
	// ErrMissingOperand reports an operator with fewer operands buffered
	// than it consumes.
	ErrMissingOperand = errors.New("missing operand")

	// ErrOperandType reports an operand of the wrong object type.
	ErrOperandType = errors.New("invalid operand type")

	// ErrOperandValue reports an operand whose value lies outside the range
	// the operator defines, such as a line join code above 2.
	ErrOperandValue = errors.New("invalid operand value")

	// ErrUnknownOperator reports an unrecognized operator outside a
	// BX .. EX compatibility section.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrFramingOperator reports a loose ID or EI. Those tokens frame an
	// inline image payload and are consumed by BI handling; meeting one on
	// its own means the stream is malformed.
	ErrFramingOperator = errors.New("misplaced inline image operator")

	// ErrUnterminatedImage reports an inline image whose payload terminator
	// was not found before the data ran out.
	ErrUnterminatedImage = errors.New("unterminated inline image")

	// ErrReadPastBoundary reports that parsing consumed bytes beyond the
	// end of the content data, which happens when the last token is
	// truncated.
	ErrReadPastBoundary = errors.New("read past end of content data")
)
